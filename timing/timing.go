package timing

import "github.com/veandco/go-sdl2/sdl"

const fpsSampleCount = 60

var (
	dt float32 = 0.01

	// Performance counter ticks per second
	freq float64

	startTime      uint64
	frameStartTime uint64

	fpsSamples     [fpsSampleCount]float32
	fpsSampleIndex int
	fpsSampleCnt   int
)

func Init() {
	freq = float64(sdl.GetPerformanceFrequency())
	startTime = sdl.GetPerformanceCounter()
	frameStartTime = startTime
}

func FrameStarted() {
	frameStartTime = sdl.GetPerformanceCounter()
}

func secondsSince(ticks uint64) float32 {

	if freq == 0 {
		return 0
	}

	return float32(float64(sdl.GetPerformanceCounter()-ticks) / freq)
}

func FrameEnded() {

	dt = secondsSince(frameStartTime)
	if dt <= 0 {
		return
	}

	fpsSamples[fpsSampleIndex] = 1 / dt
	fpsSampleIndex = (fpsSampleIndex + 1) % fpsSampleCount
	if fpsSampleCnt < fpsSampleCount {
		fpsSampleCnt++
	}
}

// DT returns the duration of the last frame in seconds
func DT() float32 {
	return dt
}

// GetAvgFPS returns the mean fps over the last few frames
func GetAvgFPS() float32 {

	if fpsSampleCnt == 0 {
		return 0
	}

	var sum float32
	for i := 0; i < fpsSampleCnt; i++ {
		sum += fpsSamples[i]
	}

	return sum / float32(fpsSampleCnt)
}

// ElapsedTime returns seconds since Init
func ElapsedTime() float32 {
	return secondsSince(startTime)
}
