package videoio

import (
	"context"

	"github.com/five82/cascaler/internal/ffmpeg"
)

// MuxableExtensions are the output container extensions the Muxer
// accepts. The Mode Dispatcher rejects an explicit video output path
// with any other extension before a job reaches the Muxer.
var MuxableExtensions = map[string]bool{".mp4": true, ".mkv": true}

// Mux combines an elementary video stream and (optionally) an
// elementary audio stream into outputPath, stream-copying both so no
// codec parameters are re-encoded during muxing. audioPath may be
// empty for a video-only output.
func Mux(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := ffmpeg.BuildMuxArgs(ffmpeg.MuxParams{
		VideoPath:  videoPath,
		AudioPath:  audioPath,
		OutputPath: outputPath,
	})
	pipe, err := ffmpeg.StartPipe(ctx, "ffmpeg", args, false, false)
	if err != nil {
		return err
	}
	return pipe.Wait()
}
