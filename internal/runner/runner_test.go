package runner

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/iconidentify/yurei/internal/domain"
	"github.com/iconidentify/yurei/internal/process"
	"github.com/iconidentify/yurei/internal/process/processtest"
)

const testURL = "https://www.youtube.com/watch?v=abc123"

func TestStreamArgs(t *testing.T) {
	tests := []struct {
		name  string
		ytdlp string
		want  []string
	}{
		{
			name:  "default yt-dlp",
			ytdlp: "",
			want:  []string{"--ytdl-format=137+bestaudio/best", testURL},
		},
		{
			name:  "custom yt-dlp",
			ytdlp: "/opt/yt-dlp",
			want:  []string{"--ytdl-format=137+bestaudio/best", "--script-opts=ytdl_hook-ytdl_path=/opt/yt-dlp", testURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&processtest.Fake{}, Config{Ytdlp: tt.ytdlp}, &bytes.Buffer{}, nil)
			if got := r.StreamArgs(testURL, "137"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StreamArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDownloadArgs(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		subs bool
		want []string
	}{
		{
			name: "plain",
			want: []string{"-f", "22+bestaudio/best", "--no-mtime", "--progress", testURL},
		},
		{
			name: "subtitles",
			subs: true,
			want: []string{"-f", "22+bestaudio/best", "--no-mtime", "--progress", testURL,
				"--write-auto-subs", "--sub-lang", "en,id", "--embed-subs"},
		},
		{
			name: "directory and languages",
			cfg:  Config{DownloadDir: "/media/videos", SubLangs: "ja"},
			subs: true,
			want: []string{"-f", "22+bestaudio/best", "--no-mtime", "--progress", "-P", "/media/videos", testURL,
				"--write-auto-subs", "--sub-lang", "ja", "--embed-subs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&processtest.Fake{}, tt.cfg, &bytes.Buffer{}, nil)
			if got := r.DownloadArgs(testURL, "22", tt.subs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DownloadArgs() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestDownloadArgs_EmptyFormatID(t *testing.T) {
	r := New(&processtest.Fake{}, Config{}, &bytes.Buffer{}, nil)
	got := r.DownloadArgs(testURL, "", false)
	if got[1] != "+bestaudio/best" {
		t.Errorf("selector = %q, want %q", got[1], "+bestaudio/best")
	}
}

func TestStream_AttachesPlayer(t *testing.T) {
	fake := &processtest.Fake{}
	r := New(fake, Config{Mpv: "/usr/bin/mpv"}, &bytes.Buffer{}, nil)

	if err := r.Stream(context.Background(), testURL, "18"); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if fake.Last().Name != "/usr/bin/mpv" {
		t.Errorf("command = %q, want /usr/bin/mpv", fake.Last().Name)
	}
	if got := fake.Last().Args; len(got) != 2 || got[1] != testURL {
		t.Errorf("args = %q", got)
	}
}

func TestStream_NonZeroExitIgnored(t *testing.T) {
	fake := &processtest.Fake{
		Respond: func(process.Command, string) ([]byte, error) {
			return nil, &process.ExitError{Name: "mpv", Code: 2}
		},
	}
	r := New(fake, Config{}, &bytes.Buffer{}, nil)

	if err := r.Stream(context.Background(), testURL, "18"); err != nil {
		t.Errorf("Stream() error = %v, want nil for non-zero exit", err)
	}
}

func TestDownload_StartFailure(t *testing.T) {
	fake := &processtest.Fake{
		Respond: func(process.Command, string) ([]byte, error) {
			return nil, domain.NewToolError("yt-dlp", "start", domain.ErrToolNotFound)
		},
	}
	r := New(fake, Config{}, &bytes.Buffer{}, nil)

	err := r.Download(context.Background(), testURL, "22", false)
	if !errors.Is(err, domain.ErrToolNotFound) {
		t.Errorf("Download() error = %v, want ErrToolNotFound", err)
	}
}

func TestDownload_LowSpaceWarning(t *testing.T) {
	tests := []struct {
		name     string
		free     uint64
		freeErr  error
		minFree  uint64
		wantWarn bool
	}{
		{"plenty", 50_000_000_000, nil, 1_000_000_000, false},
		{"low", 200_000_000, nil, 1_000_000_000, true},
		{"check disabled", 1, nil, 0, false},
		{"check failed", 0, errors.New("statfs"), 1_000_000_000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &processtest.Fake{}
			var out bytes.Buffer
			r := New(fake, Config{MinFreeSpace: tt.minFree}, &out, nil)
			r.freeSpace = func(string) (uint64, error) { return tt.free, tt.freeErr }

			if err := r.Download(context.Background(), testURL, "22", false); err != nil {
				t.Fatalf("Download() error = %v", err)
			}
			gotWarn := strings.Contains(out.String(), "Warning: only")
			if gotWarn != tt.wantWarn {
				t.Errorf("warning printed = %v, want %v (output %q)", gotWarn, tt.wantWarn, out.String())
			}
			if len(fake.Calls) != 1 {
				t.Errorf("downloader ran %d times, want 1", len(fake.Calls))
			}
		})
	}
}

func TestFreeDiskSpace(t *testing.T) {
	free, err := freeDiskSpace(t.TempDir())
	if err != nil {
		t.Fatalf("freeDiskSpace() error = %v", err)
	}
	if free == 0 {
		t.Error("freeDiskSpace() = 0 for a writable temp dir")
	}

	if _, err := freeDiskSpace("/nonexistent/yurei"); err == nil {
		t.Error("freeDiskSpace() should fail for a missing directory")
	}
}
