// Package extractor wraps the external yt-dlp and ffmpeg binaries behind a
// narrow, typed interface. Nothing outside this boundary depends on the
// tools' argument or output formats.
package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ytbatch/internal/encoder"
	"ytbatch/internal/model"
	"ytbatch/internal/tag"
	"ytbatch/internal/util"
)

// DefaultPageSize is the number of entries fetched per channel page.
const DefaultPageSize = 10

// Adapter shells out to the downloader (yt-dlp/youtube-dl) and, for audio
// container conversion, to ffmpeg.
type Adapter struct {
	DownloaderPath string
	FFmpegPath     string
	PageSize       int  // Entries per channel page; DefaultPageSize if 0.
	Verbose        bool
	KeepTemp       bool // Keep per-item temp workdirs for debugging.

	Runner util.CmdRunner // Injected in tests; defaults to real processes.
}

func (a *Adapter) runner() util.CmdRunner {
	if a.Runner != nil {
		return a.Runner
	}
	return util.NewDefaultRunner()
}

func (a *Adapter) pageSize() int {
	if a.PageSize > 0 {
		return a.PageSize
	}
	return DefaultPageSize
}

// ListChannelPage fetches one page of a channel's uploads. pageToken is the
// token from a previous page's NextPage, or "" for the first page. The
// channel URL is normalized to its /videos tab first; if a homepage URL
// still yields nothing, one retry with the suffix forced is attempted.
func (a *Adapter) ListChannelPage(ctx context.Context, channelURL, pageToken string) (model.ChannelPage, error) {
	if a.DownloaderPath == "" {
		return model.ChannelPage{}, errors.New("downloader path is required")
	}
	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 {
			return model.ChannelPage{}, fmt.Errorf("invalid page token %q", pageToken)
		}
		offset = n
	}

	url := util.NormalizeChannelURL(channelURL)
	page, err := a.listPage(ctx, url, offset)
	if err != nil {
		return model.ChannelPage{}, err
	}
	if len(page.Entries) == 0 && !strings.Contains(url, "/videos") {
		url = util.NormalizeChannelURL(strings.TrimRight(url, "/") + "/videos")
		page, err = a.listPage(ctx, url, offset)
		if err != nil {
			return model.ChannelPage{}, err
		}
	}
	return page, nil
}

func (a *Adapter) listPage(ctx context.Context, url string, offset int) (model.ChannelPage, error) {
	count := a.pageSize()
	res, runErr := a.runner().Run(ctx, util.CmdSpec{
		Path:    a.DownloaderPath,
		Args:    listingArgs(url, offset, count),
		Verbose: a.Verbose,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return model.ChannelPage{}, &ExtractionError{URL: url, Detail: util.LastLine(res.Stderr), Err: runErr}
	}

	var listing flatListing
	if err := json.Unmarshal(res.Stdout, &listing); err != nil {
		return model.ChannelPage{}, &ExtractionError{URL: url, Detail: "unparseable listing output", Err: err}
	}

	page := model.ChannelPage{}
	for _, e := range listing.Entries {
		u := e.videoURL()
		if u == "" {
			continue
		}
		title := e.Title
		if title == "" {
			title = "N/A"
		}
		page.Entries = append(page.Entries, model.ChannelEntry{
			URL:       u,
			Title:     title,
			Thumbnail: e.thumbnail(),
		})
	}
	if len(listing.Entries) == count {
		page.NextPage = strconv.Itoa(offset + count)
	}
	return page, nil
}

// Download fetches one URL in the requested format into destDir and returns
// the final file. The media lands in a per-item temp workdir first; audio
// formats are converted with ffmpeg when the container differs, and mp3
// output is ID3-tagged best-effort.
func (a *Adapter) Download(ctx context.Context, url string, spec model.FormatSpec, destDir string) (model.Downloaded, error) {
	if a.DownloaderPath == "" {
		return model.Downloaded{}, errors.New("downloader path is required")
	}

	info, err := a.fetchMetadata(ctx, url, spec)
	if err != nil {
		return model.Downloaded{}, err
	}

	workdir, err := util.MakeTempWorkdir("item")
	if err != nil {
		return model.Downloaded{}, &DownloadError{URL: url, Reason: fmt.Sprintf("create temp dir: %v", err), Err: err}
	}
	defer func() {
		if !a.KeepTemp {
			_ = os.RemoveAll(workdir)
		}
	}()

	// Fixed id-based template so the landed file can be glob-resolved.
	outTemplate := filepath.Join(workdir, "%(id)s.%(ext)s")
	res, runErr := a.runner().Run(ctx, util.CmdSpec{
		Path:    a.DownloaderPath,
		Args:    downloadArgs(url, spec, outTemplate, a.FFmpegPath),
		Dir:     workdir,
		Verbose: a.Verbose,
	})
	if runErr != nil {
		return model.Downloaded{}, &DownloadError{URL: url, Reason: util.LastLine(res.Stderr), Err: runErr}
	}

	input, err := resolveDownloaded(workdir, info.ID)
	if err != nil {
		return model.Downloaded{}, &DownloadError{URL: url, Reason: err.Error(), Err: err}
	}

	if err := util.EnsureDir(destDir); err != nil {
		return model.Downloaded{}, &DownloadError{URL: url, Reason: fmt.Sprintf("ensure destination: %v", err), Err: err}
	}

	final, err := a.finalize(ctx, input, info, spec, destDir)
	if err != nil {
		return model.Downloaded{}, err
	}

	return model.Downloaded{
		Path:     final,
		Title:    info.Title,
		Uploader: info.Uploader,
		ID:       info.ID,
	}, nil
}

// finalize moves (and for audio, converts) the landed file into destDir.
// The id suffix in the filename keeps concurrent items collision-free.
func (a *Adapter) finalize(ctx context.Context, input string, info ytdlpInfo, spec model.FormatSpec, destDir string) (string, error) {
	base := fmt.Sprintf("%s [%s]", util.SanitizeFilename(info.Title), info.ID)

	if !spec.Audio() {
		final := filepath.Join(destDir, base+filepath.Ext(input))
		if err := util.MoveFile(input, final); err != nil {
			return "", &DownloadError{URL: info.ID, Reason: fmt.Sprintf("move output: %v", err), Err: err}
		}
		return final, nil
	}

	codec := spec.AudioCodec()
	final := filepath.Join(destDir, base+"."+codec)
	if strings.EqualFold(strings.TrimPrefix(filepath.Ext(input), "."), codec) {
		// Container already matches; no conversion pass needed.
		if err := util.MoveFile(input, final); err != nil {
			return "", &DownloadError{URL: info.ID, Reason: fmt.Sprintf("move output: %v", err), Err: err}
		}
	} else {
		if a.FFmpegPath == "" {
			err := errors.New("ffmpeg is required for audio conversion")
			return "", &DownloadError{URL: info.ID, Reason: err.Error(), Err: err}
		}
		if err := encoder.ConvertAudio(ctx, input, final, codec, encoder.Options{
			FFmpegPath: a.FFmpegPath,
			Verbose:    a.Verbose,
			Runner:     a.runner(),
		}); err != nil {
			return "", &DownloadError{URL: info.ID, Reason: fmt.Sprintf("convert audio: %v", err), Err: err}
		}
	}

	if spec == model.FormatAudioMP3 {
		// Best effort; a missing tag never fails the download.
		_ = tag.WriteID3(final, info.Title, info.Uploader)
	}
	return final, nil
}

func (a *Adapter) fetchMetadata(ctx context.Context, url string, spec model.FormatSpec) (ytdlpInfo, error) {
	res, runErr := a.runner().Run(ctx, util.CmdSpec{
		Path:    a.DownloaderPath,
		Args:    metadataArgs(url, spec),
		Verbose: a.Verbose,
	})
	if runErr != nil && len(res.Stdout) == 0 {
		return ytdlpInfo{}, &DownloadError{URL: url, Reason: util.LastLine(res.Stderr), Err: runErr}
	}

	// yt-dlp prints progress to stderr but JSON to stdout; with warnings
	// interleaved, the last parseable line wins.
	data := strings.TrimSpace(string(res.Stdout))
	var info ytdlpInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil || info.ID == "" {
		lines := strings.Split(data, "\n")
		for i := len(lines) - 1; i >= 0; i-- {
			line := strings.TrimSpace(lines[i])
			if line == "" {
				continue
			}
			var tmp ytdlpInfo
			if json.Unmarshal([]byte(line), &tmp) == nil && tmp.ID != "" {
				return tmp, nil
			}
		}
		return ytdlpInfo{}, &DownloadError{URL: url, Reason: "unparseable metadata output", Err: err}
	}
	return info, nil
}

// resolveDownloaded finds the file yt-dlp produced for the given id,
// preferring common playable containers when several survive.
func resolveDownloaded(workdir, id string) (string, error) {
	var candidates []string
	entries, err := os.ReadDir(workdir)
	if err != nil {
		return "", fmt.Errorf("resolve download: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == id {
			candidates = append(candidates, filepath.Join(workdir, name))
		}
	}
	if len(candidates) == 0 {
		// Fallback: take whatever landed.
		for _, e := range entries {
			if !e.IsDir() {
				candidates = append(candidates, filepath.Join(workdir, e.Name()))
			}
		}
	}
	if len(candidates) == 0 {
		return "", errors.New("download succeeded but no output file found")
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi := extPriority(filepath.Ext(candidates[i]))
		pj := extPriority(filepath.Ext(candidates[j]))
		if pi == pj {
			return candidates[i] < candidates[j]
		}
		return pi < pj
	})
	return candidates[0], nil
}

func extPriority(ext string) int {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "mp4":
		return 0
	case "mkv":
		return 1
	case "webm":
		return 2
	case "m4a":
		return 3
	case "opus", "mp3":
		return 4
	default:
		return 9
	}
}
