package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/fingerframe/internal/geom"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, either as a fixed
// per-call result or as a scripted per-frame sequence.
type MockDetector struct {
	tips     []geom.Point
	sequence [][]geom.Point
	index    int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetTips sets the fingertip positions returned by every Detect call.
// Clears any scripted sequence.
func (m *MockDetector) SetTips(tips []geom.Point) {
	m.tips = tips
	m.sequence = nil
	m.index = 0
}

// SetSequence scripts one Detect result per frame. After the sequence is
// exhausted, Detect keeps returning the last entry.
func (m *MockDetector) SetSequence(frames [][]geom.Point) {
	m.sequence = frames
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured tips or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]geom.Point, error) {
	if m.err != nil {
		return nil, m.err
	}

	if len(m.sequence) > 0 {
		tips := m.sequence[m.index]
		if m.index < len(m.sequence)-1 {
			m.index++
		}
		return tips, nil
	}

	return m.tips, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// TwoTips returns a fingertip pair spanning a comfortable rectangle in a
// 640x480 frame, for use as a test preset.
func TwoTips() []geom.Point {
	return []geom.Point{
		{X: 160, Y: 120},
		{X: 480, Y: 360},
	}
}
