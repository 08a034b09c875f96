package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
)

// FFprobe 调用 ffprobe 读取视频时长
type FFprobe struct {
	bin string
}

// NewFFprobe 找不到 ffprobe 时返回 nil，上传的视频时长记为 0
func NewFFprobe(bin string) Prober {
	if bin == "" {
		bin = "ffprobe"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil
	}
	return &FFprobe{bin: resolved}
}

func (p *FFprobe) Duration(ctx context.Context, localPath string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		localPath,
	}

	output, err := exec.CommandContext(ctx, p.bin, args...).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeDuration(output)
}

// parseProbeDuration 优先取 format.duration，没有时取首个带时长的流
func parseProbeDuration(output []byte) (float64, error) {
	var data struct {
		Streams []struct {
			Duration string `json:"duration"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(output, &data); err != nil {
		return 0, err
	}

	candidates := []string{data.Format.Duration}
	for _, s := range data.Streams {
		candidates = append(candidates, s.Duration)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if dur, err := strconv.ParseFloat(c, 64); err == nil && dur > 0 {
			return dur, nil
		}
	}
	return 0, nil
}
