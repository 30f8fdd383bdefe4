package loop

import (
	"errors"
	"image"
	"math/rand"
	"testing"
	"time"

	appconfig "github.com/tomz197/fruitslice/internal/config"
	"github.com/tomz197/fruitslice/internal/draw"
	"github.com/tomz197/fruitslice/internal/input"
	"github.com/tomz197/fruitslice/internal/object"
	"github.com/tomz197/fruitslice/internal/physics"
	"github.com/tomz197/fruitslice/internal/tracker"
	"github.com/tomz197/fruitslice/internal/vision"
)

const frameStep = time.Second / 60

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeCamera struct {
	frame  *image.Gray
	err    error
	reads  int
	closed bool
}

func (c *fakeCamera) Read() (image.Image, error) {
	c.reads++
	if c.err != nil {
		return nil, c.err
	}
	return c.frame, nil
}

func (c *fakeCamera) Close() error {
	c.closed = true
	return nil
}

type fakeDetector struct {
	point  image.Point
	ok     bool
	calls  int
	closed bool
}

func (d *fakeDetector) Detect(image.Image) (image.Point, bool) {
	d.calls++
	return d.point, d.ok
}

func (d *fakeDetector) Close() error {
	d.closed = true
	return nil
}

type fakeCues struct {
	slices, explosions int
	closed             bool
}

func (c *fakeCues) Slice()       { c.slices++ }
func (c *fakeCues) Explosion()   { c.explosions++ }
func (c *fakeCues) Close() error { c.closed = true; return nil }

type harness struct {
	session *Session
	clock   *fakeClock
	camera  *fakeCamera
	hand    *fakeDetector
	eye     *fakeDetector
	cues    *fakeCues
}

// newHarness builds a dual-mode session on a 1280x720 screen with a 640x480
// camera. Both detectors report the frame centre, which the offset transform
// maps to the screen centre (640, 360).
func newHarness(t *testing.T) *harness {
	t.Helper()
	settings := appconfig.Dual()

	h := &harness{
		clock:  &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		camera: &fakeCamera{frame: image.NewGray(image.Rect(0, 0, 640, 480))},
		hand:   &fakeDetector{point: image.Pt(320, 240), ok: true},
		eye:    &fakeDetector{point: image.Pt(320, 240), ok: true},
		cues:   &fakeCues{},
	}
	s, err := NewSession(Options{
		Settings: settings,
		Camera:   h.camera,
		Detectors: map[tracker.Mode]vision.Detector{
			tracker.Hand: h.hand,
			tracker.Eye:  h.eye,
		},
		Cues:  h.cues,
		Clock: h.clock.Now,
		Rand:  rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	h.session = s
	return h
}

func (h *harness) step(ctrl Controls) bool {
	h.clock.Advance(frameStep)
	return h.session.Step(ctrl)
}

func fruitAt(kind object.Kind, x, y float64) *object.Fruit {
	f := object.NewFruit(rand.New(rand.NewSource(1)), kind, physics.Body{X: x, Y: y})
	f.Radius = 30
	return f
}

func TestSliceScoresBananaAndWatermelon(t *testing.T) {
	h := newHarness(t)
	s := h.session
	s.fruits = []*object.Fruit{
		fruitAt(object.KindBanana, 640, 360),
		fruitAt(object.KindWatermelon, 650, 360),
	}

	if !h.step(Controls{}) {
		t.Fatal("frame did not advance")
	}
	if s.Score() != 5 {
		t.Errorf("score = %d, want 5", s.Score())
	}
	if len(s.fruits) != 0 {
		t.Errorf("fruits left = %d, want 0", len(s.fruits))
	}
	if len(s.bursts) != 2 || len(s.splashes) != 2 || len(s.stains) != 2 {
		t.Errorf("effects = %d bursts, %d splashes, %d stains; want 2 each",
			len(s.bursts), len(s.splashes), len(s.stains))
	}
	for _, st := range s.stains {
		if st.Size < 50 || st.Size > 80 {
			t.Errorf("stain size = %d, want within [50, 80]", st.Size)
		}
	}
	if h.cues.slices != 2 || h.cues.explosions != 0 {
		t.Errorf("cues = %d slices, %d explosions", h.cues.slices, h.cues.explosions)
	}
}

func TestBombStopsScanAndEndsRound(t *testing.T) {
	h := newHarness(t)
	s := h.session
	trailing := fruitAt(object.KindApple, 645, 360)
	s.fruits = []*object.Fruit{
		fruitAt(object.KindApple, 640, 360),
		fruitAt(object.KindBomb, 640, 365),
		trailing,
	}

	if !h.step(Controls{}) {
		t.Fatal("bomb frame should still finish")
	}
	if !s.GameOver() {
		t.Fatal("bomb did not end the game")
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
	if len(s.fruits) != 1 || s.fruits[0] != trailing {
		t.Errorf("fruits = %v, want only the apple after the bomb", s.fruits)
	}
	if len(s.bursts) != 2 || len(s.splashes) != 1 {
		t.Errorf("effects = %d bursts, %d splashes; want 2 and 1", len(s.bursts), len(s.splashes))
	}
	if h.cues.explosions != 1 || h.cues.slices != 1 {
		t.Errorf("cues = %d slices, %d explosions", h.cues.slices, h.cues.explosions)
	}

	reads := h.camera.reads
	if h.step(Controls{}) {
		t.Error("frame advanced after game over")
	}
	if s.Running() {
		t.Error("session still running after game over")
	}
	if h.camera.reads != reads {
		t.Error("camera read after game over")
	}
}

func TestSliceBoundaryIsStrict(t *testing.T) {
	h := newHarness(t)
	s := h.session
	rim := fruitAt(object.KindApple, 670, 360)
	s.fruits = []*object.Fruit{rim}

	h.step(Controls{})
	if len(s.fruits) != 1 || s.Score() != 0 {
		t.Errorf("fruit on the rim was sliced: fruits %d, score %d", len(s.fruits), s.Score())
	}
}

func TestNoCursorNoSlice(t *testing.T) {
	h := newHarness(t)
	h.hand.ok = false
	s := h.session
	s.fruits = []*object.Fruit{fruitAt(object.KindApple, 640, 360)}

	h.step(Controls{})
	if s.Score() != 0 || len(s.fruits) != 1 {
		t.Error("slice without a cursor")
	}
}

func TestRoundEndsWhenTimeRunsOut(t *testing.T) {
	h := newHarness(t)
	h.hand.ok = false
	s := h.session

	frames := 0
	for s.Running() && frames < 10000 {
		h.step(Controls{})
		frames++
	}

	if s.Running() {
		t.Fatal("session still running")
	}
	if s.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", s.Remaining())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.GameOver() {
		t.Error("timeout reported as a bomb")
	}
	// The round ends on the first frame where less than one whole second is left.
	if want := 59*60 + 1; frames < want-1 || frames > want+1 {
		t.Errorf("frames = %d, want about %d", frames, want)
	}
}

func TestFramesSpawnAndCull(t *testing.T) {
	h := newHarness(t)
	h.hand.ok = false
	s := h.session

	seen := make(map[*object.Fruit]bool)
	for i := 0; i < 60*10; i++ {
		h.step(Controls{})
		for _, f := range s.fruits {
			seen[f] = true
			if f.Y > float64(s.screen.Height+object.CullMargin) {
				t.Fatalf("fruit at y=%v was not culled", f.Y)
			}
		}
	}
	spawned := len(seen)
	// Interval starts at 2s and shrinks; ten seconds give at least four throws.
	if spawned < 4 || spawned > 6 {
		t.Errorf("spawned = %d, want 4 to 6 in ten seconds", spawned)
	}
}

func TestCameraFailureSkipsFrame(t *testing.T) {
	h := newHarness(t)
	s := h.session
	s.fruits = []*object.Fruit{fruitAt(object.KindApple, 100, 100)}
	s.fruits[0].VY = -500

	h.camera.err = vision.ErrNoFrame
	h.clock.Advance(3 * time.Second)
	if h.step(Controls{}) {
		t.Fatal("frame advanced without a camera frame")
	}
	if !s.Running() {
		t.Fatal("camera failure ended the session")
	}
	if h.hand.calls != 0 {
		t.Error("detector ran without a frame")
	}
	if len(s.fruits) != 1 || s.fruits[0].Y != 100 {
		t.Errorf("objects moved during a skipped frame")
	}

	h.camera.err = nil
	if !h.step(Controls{}) {
		t.Fatal("frame did not advance after the camera recovered")
	}
	// Only the wall time since the skipped frame is integrated.
	if y := s.fruits[0].Y; y < 100-500*frameStep.Seconds()-1e-9 || y > 100 {
		t.Errorf("y = %v, want one frame of motion", y)
	}
}

func TestToggleSwitchesDetector(t *testing.T) {
	h := newHarness(t)
	s := h.session

	h.step(Controls{})
	if _, ok := s.Cursor(); !ok {
		t.Fatal("no cursor after a detection")
	}

	h.eye.ok = false
	h.step(Controls{ToggleMode: true})
	if s.Mode() != tracker.Eye {
		t.Fatalf("mode = %v, want EYE", s.Mode())
	}
	if _, ok := s.Cursor(); ok {
		t.Error("cursor survived the toggle")
	}
	if h.eye.calls != 1 || h.hand.calls != 1 {
		t.Errorf("detector calls = hand %d, eye %d; want 1 each", h.hand.calls, h.eye.calls)
	}
}

func TestQuitEndsSession(t *testing.T) {
	h := newHarness(t)
	if h.step(Controls{Quit: true}) {
		t.Error("quit frame advanced")
	}
	if h.session.Running() {
		t.Error("session running after quit")
	}
	if h.camera.reads != 0 {
		t.Error("camera read on the quit frame")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	h := newHarness(t)
	if err := h.session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !h.camera.closed || !h.hand.closed || !h.eye.closed || !h.cues.closed {
		t.Errorf("closed: camera %v, hand %v, eye %v, cues %v",
			h.camera.closed, h.hand.closed, h.eye.closed, h.cues.closed)
	}
	if err := h.session.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if h.session.Step(Controls{}) {
		t.Error("closed session advanced")
	}
}

func TestNewSessionValidatesCollaborators(t *testing.T) {
	settings := appconfig.Dual()
	cam := &fakeCamera{frame: image.NewGray(image.Rect(0, 0, 4, 4))}

	if _, err := NewSession(Options{Settings: settings}); err == nil {
		t.Error("session without a camera accepted")
	}
	_, err := NewSession(Options{
		Settings:  settings,
		Camera:    cam,
		Detectors: map[tracker.Mode]vision.Detector{tracker.Hand: &fakeDetector{}},
	})
	if err == nil {
		t.Error("session without an eye detector accepted")
	}
}

func labelTexts(c *draw.Canvas) map[string]draw.Label {
	out := make(map[string]draw.Label)
	for _, l := range c.Labels() {
		out[l.Text] = l
	}
	return out
}

func TestDrawBoardAndHUD(t *testing.T) {
	h := newHarness(t)
	s := h.session
	s.fruits = []*object.Fruit{fruitAt(object.KindBanana, 640, 360)}
	h.step(Controls{})

	canvas := draw.NewCanvas(1280, 720)
	s.Draw(canvas)

	if got := canvas.At(5, 700); got != colorBoard {
		t.Errorf("background = %v, want board colour", got)
	}
	if got := canvas.At(128, 700); got != colorGrid {
		t.Errorf("grid line = %v, want grid colour", got)
	}
	if got := canvas.At(640, 360); got != colorText {
		t.Errorf("cursor pixel = %v, want white hand marker", got)
	}

	labels := labelTexts(canvas)
	for _, want := range []string{"Score: 2", "Time: 59", "Mode: HAND (Press M to toggle)"} {
		if _, ok := labels[want]; !ok {
			t.Errorf("missing label %q in %v", want, canvas.Labels())
		}
	}
	if l := labels["Time: 59"]; l.X != 1130 || l.Y != 10 {
		t.Errorf("time label at (%v, %v), want (1130, 10)", l.X, l.Y)
	}
}

func TestDrawHidesModeHintWithOneMode(t *testing.T) {
	settings := appconfig.Classic()
	s, err := NewSession(Options{
		Settings:  settings,
		Camera:    &fakeCamera{frame: image.NewGray(image.Rect(0, 0, 640, 480))},
		Detectors: map[tracker.Mode]vision.Detector{tracker.Hand: &fakeDetector{}},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	canvas := draw.NewCanvas(1280, 720)
	s.Draw(canvas)
	if n := len(canvas.Labels()); n != 2 {
		t.Errorf("labels = %v, want score and time only", canvas.Labels())
	}
}

func TestDrawGameOver(t *testing.T) {
	h := newHarness(t)
	h.session.score = 12

	canvas := draw.NewCanvas(1280, 720)
	h.session.DrawGameOver(canvas)

	if got := canvas.At(640, 360); got != colorBlack {
		t.Errorf("background = %v, want black", got)
	}
	labels := labelTexts(canvas)
	title, ok := labels["Game Over!"]
	if !ok || title.Y != 310 || title.Anchor != draw.AnchorCenter || title.Color != colorGameOver {
		t.Errorf("title label = %+v", title)
	}
	score, ok := labels["Final Score: 12"]
	if !ok || score.X != 640 || score.Y != 360 {
		t.Errorf("score label = %+v", score)
	}
}

func TestTerminalPointer(t *testing.T) {
	p := &terminalPointer{}
	if got, err := p.Pointer(); err != nil || got.Visible {
		t.Errorf("unseen pointer = %+v, %v", got, err)
	}

	p.update(input.Events{PointerCol: 50, PointerRow: 10, PointerSeen: true}, 100, 40)
	got, err := p.Pointer()
	if err != nil || !got.Visible {
		t.Fatalf("pointer = %+v, %v", got, err)
	}
	if got.X != 0.495 || got.Y != 0.2375 {
		t.Errorf("pointer = (%v, %v), want (0.495, 0.2375)", got.X, got.Y)
	}

	p.update(input.Events{Closed: true}, 100, 40)
	if _, err := p.Pointer(); err == nil {
		t.Error("closed input still reports a pointer")
	}
}

func TestDetectorsPerMode(t *testing.T) {
	d, err := Detectors(appconfig.Dual())
	if err != nil {
		t.Fatalf("Detectors: %v", err)
	}
	if len(d) != 2 || d[tracker.Hand] == d[tracker.Eye] {
		t.Errorf("detectors = %v, want one instance per mode", d)
	}

	bad := appconfig.Dual()
	bad.Modes = []string{"tail"}
	if _, err := Detectors(bad); err == nil {
		t.Error("unknown mode accepted")
	}
}

func TestFrameErrorIsRecoverable(t *testing.T) {
	h := newHarness(t)
	h.camera.err = errors.New("usb hiccup")
	for i := 0; i < 5; i++ {
		h.step(Controls{})
	}
	if !h.session.Running() {
		t.Error("repeated frame failures ended the session")
	}
}
