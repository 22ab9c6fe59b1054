package md2

// Sprint is a named range of frames, like running or jumping
type Sprint int

const (
	Sprint_Stand Sprint = iota
	Sprint_Run
	Sprint_Attack
	Sprint_Pain_A
	Sprint_Pain_B
	Sprint_Pain_C
	Sprint_Jump
	Sprint_Flip
	Sprint_Salute
	Sprint_Fallback
	Sprint_Wave
	Sprint_Point
	Sprint_Crouch_Stand
	Sprint_Crouch_Walk
	Sprint_Crouch_Attack
	Sprint_Crouch_Pain
	Sprint_Crouch_Death
	Sprint_Death_Fallback
	Sprint_Death_Fallforward
	Sprint_Death_Fallbackslow
	Sprint_Boom

	Sprint_Count
)

type SprintKey struct {
	FirstFrame int
	LastFrame  int
	FPS        int
}

// Sprints are the frame ranges every Quake2 player model follows
var Sprints = [Sprint_Count]SprintKey{
	Sprint_Stand:              {0, 39, 9},
	Sprint_Run:                {40, 45, 10},
	Sprint_Attack:             {46, 53, 10},
	Sprint_Pain_A:             {54, 57, 7},
	Sprint_Pain_B:             {58, 61, 7},
	Sprint_Pain_C:             {62, 65, 7},
	Sprint_Jump:               {66, 71, 7},
	Sprint_Flip:               {72, 83, 7},
	Sprint_Salute:             {84, 94, 7},
	Sprint_Fallback:           {95, 111, 10},
	Sprint_Wave:               {112, 122, 7},
	Sprint_Point:              {123, 134, 6},
	Sprint_Crouch_Stand:       {135, 153, 10},
	Sprint_Crouch_Walk:        {154, 159, 7},
	Sprint_Crouch_Attack:      {160, 168, 10},
	Sprint_Crouch_Pain:        {169, 172, 7},
	Sprint_Crouch_Death:       {173, 177, 5},
	Sprint_Death_Fallback:     {178, 183, 7},
	Sprint_Death_Fallforward:  {184, 189, 7},
	Sprint_Death_Fallbackslow: {190, 197, 7},
	Sprint_Boom:               {198, 198, 5},
}

var sprintNames = [Sprint_Count]string{
	"stand", "run", "attack", "pain_a", "pain_b", "pain_c", "jump", "flip", "salute", "fallback", "wave",
	"point", "crouch_stand", "crouch_walk", "crouch_attack", "crouch_pain", "crouch_death",
	"death_fallback", "death_fallforward", "death_fallbackslow", "boom",
}

func (s Sprint) String() string {
	if s < 0 || s >= Sprint_Count {
		return "unknown"
	}
	return sprintNames[s]
}

// SprintByName finds a sprint by its String name
func SprintByName(name string) (Sprint, bool) {

	for i, n := range sprintNames {
		if n == name {
			return Sprint(i), true
		}
	}

	return Sprint_Stand, false
}

// ClampTo limits the key to the frames a model actually has
func (k SprintKey) ClampTo(numFrames int) SprintKey {

	if numFrames <= 0 {
		return SprintKey{FPS: k.FPS}
	}

	k.FirstFrame = max(0, min(k.FirstFrame, numFrames-1))
	k.LastFrame = max(k.FirstFrame, min(k.LastFrame, numFrames-1))
	return k
}

// SprintState tracks playback of a sprint. Lerp goes from 0 to 1 between CurrentFrame and NextFrame.
type SprintState struct {
	Sprint       SprintKey
	CurrentFrame int
	NextFrame    int
	CurrentTime  float32
	OldTime      float32
	Lerp         float32
}

func NewSprintState(key SprintKey) SprintState {
	s := SprintState{}
	s.Set(key)
	return s
}

// Set restarts playback with a new sprint
func (s *SprintState) Set(key SprintKey) {
	*s = SprintState{
		Sprint:       key,
		CurrentFrame: key.FirstFrame,
		NextFrame:    wrapFrame(key, key.FirstFrame+1),
	}
}

// Advance moves time forward by dt seconds, stepping as many frames as fit in that time
func (s *SprintState) Advance(dt float32) {

	if s.Sprint.FPS <= 0 {
		s.Lerp = 0
		return
	}

	frameDur := 1 / float32(s.Sprint.FPS)
	s.CurrentTime += dt
	for s.CurrentTime-s.OldTime >= frameDur {
		s.CurrentFrame = s.NextFrame
		s.NextFrame = wrapFrame(s.Sprint, s.NextFrame+1)
		s.OldTime += frameDur
	}

	s.Lerp = (s.CurrentTime - s.OldTime) * float32(s.Sprint.FPS)
}

func wrapFrame(key SprintKey, frame int) int {
	if frame > key.LastFrame || frame < key.FirstFrame {
		return key.FirstFrame
	}
	return frame
}

// LerpPositions writes a+(b-a)*t into dst, reusing dst when it has the capacity.
// The shorter of a and b decides the output length.
func LerpPositions(dst, a, b []float32, t float32) []float32 {

	n := min(len(a), len(b))
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for i := 0; i < n; i++ {
		dst[i] = a[i] + (b[i]-a[i])*t
	}

	return dst
}
