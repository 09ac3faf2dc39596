package manifest

import (
	"fmt"
	"strings"

	"stitch/internal/faults"
	"stitch/internal/timecode"
)

// Validate checks the manifest for local consistency: presence of required
// fields, timecode syntax, and closed policy values. Cross-clip invariants
// (channel contiguity, base layer tiling) belong to the tracks.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Output) == "" {
		return faults.Wrap(faults.ErrConfiguration, "manifest", "validate", "output path is required", nil)
	}
	if m.Video == nil && m.Audio == nil {
		return faults.Wrap(faults.ErrConfiguration, "manifest", "validate", "at least one of video or audio is required", nil)
	}
	if m.Subtitle != nil && m.Video == nil {
		return faults.Wrap(faults.ErrConfiguration, "manifest", "validate", "subtitles require a video track to burn into", nil)
	}

	if m.Video != nil {
		if err := m.validateVideo(); err != nil {
			return err
		}
	}
	if m.Audio != nil {
		if err := m.validateAudio(); err != nil {
			return err
		}
	}
	if m.Subtitle != nil {
		if err := m.validateSubtitle(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manifest) validateVideo() error {
	meta := m.Video.Meta
	if meta.Width <= 0 || meta.Height <= 0 {
		return configErr("video.meta", "width and height must be positive")
	}
	if strings.TrimSpace(meta.Bitrate) == "" {
		return configErr("video.meta", "bitrate is required")
	}
	if meta.FPS <= 0 {
		return configErr("video.meta", "fps must be positive")
	}
	if len(m.Video.Clips) == 0 {
		return configErr("video", "at least one clip is required")
	}

	for i, clip := range m.Video.Clips {
		where := clipRef("video", i, clip.UID)
		if err := validateClipCommon(where, clip.UID, clip.Path, clip.Span, clip.Clip); err != nil {
			return err
		}
		if _, err := ParseExtensionPolicy(clip.Extension); err != nil {
			return configErr(where, err.Error())
		}
		if _, err := ParseShrinkPolicy(clip.Shrink); err != nil {
			return configErr(where, err.Error())
		}
		if clip.Layer < 0 {
			return configErr(where, "layer must not be negative")
		}
		if clip.Width < 0 || clip.Height < 0 || clip.FPS < 0 {
			return configErr(where, "width, height, and fps overrides must be positive")
		}
	}
	return nil
}

func (m *Manifest) validateAudio() error {
	if m.Audio.Meta.SampleRate <= 0 {
		return configErr("audio.meta", "sample_rate must be positive")
	}
	if len(m.Audio.Clips) == 0 {
		return configErr("audio", "at least one clip is required")
	}

	for i, clip := range m.Audio.Clips {
		where := clipRef("audio", i, clip.UID)
		if err := validateClipCommon(where, clip.UID, clip.Path, clip.Span, clip.Clip); err != nil {
			return err
		}
		if clip.Channel < 0 {
			return configErr(where, "channel must not be negative")
		}
		if clip.SampleRate < 0 {
			return configErr(where, "sample_rate override must be positive")
		}
		if clip.Volume != nil && *clip.Volume < 0 {
			return configErr(where, "volume must not be negative")
		}
	}
	return nil
}

func (m *Manifest) validateSubtitle() error {
	if len(m.Subtitle.Clips) == 0 {
		return configErr("subtitle", "at least one clip is required")
	}
	for i, clip := range m.Subtitle.Clips {
		where := clipRef("subtitle", i, clip.UID)
		if _, err := timecode.ParseSpan(clip.Span[0], clip.Span[1]); err != nil {
			return configErr(where, err.Error())
		}
		if strings.TrimSpace(clip.Text) == "" {
			return configErr(where, "text is required")
		}
		if clip.Layer < 0 {
			return configErr(where, "layer must not be negative")
		}
	}
	return nil
}

func validateClipCommon(where, uid, path string, span [2]string, clip []string) error {
	if strings.TrimSpace(uid) == "" {
		return configErr(where, "uid is required")
	}
	if strings.TrimSpace(path) == "" {
		return configErr(where, "path is required")
	}
	if _, err := timecode.ParseSpan(span[0], span[1]); err != nil {
		return configErr(where, err.Error())
	}
	in, out, err := ClipWindow(clip)
	if err != nil {
		return configErr(where, err.Error())
	}
	if _, err := timecode.ParseWindow(in, out); err != nil {
		return configErr(where, err.Error())
	}
	return nil
}

func clipRef(section string, index int, uid string) string {
	if strings.TrimSpace(uid) != "" {
		return fmt.Sprintf("%s clip %q", section, uid)
	}
	return fmt.Sprintf("%s clip #%d", section, index)
}

func configErr(where, message string) error {
	return faults.Wrap(faults.ErrConfiguration, "manifest", where, message, nil)
}
