package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/younwookim/wallclimb/internal/domain/motion"
)

// FormatVersion is written into every recording.
const FormatVersion = "2.0"

var (
	ErrNoFrames   = errors.New("replay has no frames")
	ErrInvalidTPS = errors.New("replay tick rate must be positive")
)

// FrameInput records the controller input for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	X  float64 `json:"x,omitempty"`  // Smoothed horizontal axis
	Y  float64 `json:"y,omitempty"`  // Smoothed vertical axis
	RX float64 `json:"rx,omitempty"` // Raw horizontal axis
	RY float64 `json:"ry,omitempty"` // Raw vertical axis
	J  bool    `json:"j,omitempty"`  // Jump held
	JP bool    `json:"jp,omitempty"` // JumpPressed
	C  bool    `json:"c,omitempty"`  // Climb held
	CP bool    `json:"cp,omitempty"` // ClimbPressed
	DP bool    `json:"dp,omitempty"` // DashPressed
}

// FromInput converts a controller input snapshot into a frame record.
func FromInput(frame int, in motion.Input) FrameInput {
	return FrameInput{
		F:  frame,
		X:  in.X,
		Y:  in.Y,
		RX: in.RawX,
		RY: in.RawY,
		J:  in.JumpHeld,
		JP: in.JumpPressed,
		C:  in.ClimbHeld,
		CP: in.ClimbPressed,
		DP: in.DashPressed,
	}
}

// Input converts the record back into a controller input snapshot.
func (f FrameInput) Input() motion.Input {
	return motion.Input{
		X:            f.X,
		Y:            f.Y,
		RawX:         f.RX,
		RawY:         f.RY,
		JumpHeld:     f.J,
		JumpPressed:  f.JP,
		ClimbHeld:    f.C,
		ClimbPressed: f.CP,
		DashPressed:  f.DP,
	}
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	TPS       int          `json:"tps"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// DT is the fixed tick length the session was recorded at.
func (d *ReplayData) DT() time.Duration {
	if d.TPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(d.TPS)
}

// Duration is the simulated time covered by the recording.
func (d *ReplayData) Duration() time.Duration {
	return d.DT() * time.Duration(len(d.Frames))
}

// Validate checks that the recording can drive a session.
func (d *ReplayData) Validate() error {
	if len(d.Frames) == 0 {
		return ErrNoFrames
	}
	if d.TPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTPS, d.TPS)
	}
	return nil
}

// Write encodes replay data as indented JSON.
func Write(w io.Writer, data *ReplayData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Read decodes and validates replay data.
func Read(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replay: %w", err)
	}
	return &data, nil
}
