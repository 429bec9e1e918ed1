package replay

import (
	"fmt"
	"os"
	"time"

	"github.com/younwookim/wallclimb/internal/application/movement"
	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// Recorder handles input recording
type Recorder struct {
	data      ReplayData
	recording bool
}

// NewRecorder creates a new recorder for a session ticking at tps
func NewRecorder(seed int64, stage string, tps int) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			Seed:      seed,
			Stage:     stage,
			TPS:       tps,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(in motion.Input) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, FromInput(len(r.data.Frames), in))
}

// Wrap returns an input source that records every snapshot src delivers.
func (r *Recorder) Wrap(src movement.InputSource) movement.InputSource {
	return &recordingSource{src: src, rec: r}
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Write(file, &r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

type recordingSource struct {
	src movement.InputSource
	rec *Recorder
}

func (s *recordingSource) Poll() motion.Input {
	in := s.src.Poll()
	s.rec.RecordFrame(in)
	return in
}
