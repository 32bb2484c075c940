// Package ffmpeg provides FFmpeg command building and execution.
package ffmpeg

import (
	"fmt"
	"strings"
)

// CodecParamsBuilder builds a colon-separated key=value parameter
// string for codec-specific tuning flags (x264/x265 -params style),
// with method chaining.
type CodecParamsBuilder struct {
	params []paramKV
}

type paramKV struct {
	key   string
	value string
}

// NewCodecParamsBuilder creates a new empty codec params builder.
func NewCodecParamsBuilder() *CodecParamsBuilder {
	return &CodecParamsBuilder{}
}

// WithKeyintSeconds sets a keyframe interval in seconds.
func (b *CodecParamsBuilder) WithKeyintSeconds(seconds uint32) *CodecParamsBuilder {
	b.params = append(b.params, paramKV{"keyint", fmt.Sprintf("%ds", seconds)})
	return b
}

// WithSceneCutDisabled disables scene-cut-triggered keyframes, useful
// when the calling frame ordering already controls GOP structure.
func (b *CodecParamsBuilder) WithSceneCutDisabled() *CodecParamsBuilder {
	b.params = append(b.params, paramKV{"scenecut", "0"})
	return b
}

// AddParam adds an arbitrary key=value parameter.
func (b *CodecParamsBuilder) AddParam(key, value string) *CodecParamsBuilder {
	b.params = append(b.params, paramKV{key, value})
	return b
}

// Build builds the parameters into a colon-separated string suitable
// for -x264-params / -x265-params / -svtav1-params.
func (b *CodecParamsBuilder) Build() string {
	var parts []string
	for _, p := range b.params {
		parts = append(parts, fmt.Sprintf("%s=%s", p.key, p.value))
	}
	return strings.Join(parts, ":")
}
