package client

// State is the controller's position in the generate flow
type State int

const (
	StateIdle State = iota
	StateValidating
	StateUploading
	StateGenerating
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateUploading:
		return "uploading"
	case StateGenerating:
		return "generating"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// TriggerLabel is the idle text of the generate control
	TriggerLabel = "Generate Aura"
	// BusyTriggerLabel is shown while a generation is in flight
	BusyTriggerLabel = "Generating..."

	StatusUploading  = "Uploading image..."
	StatusGenerating = "Generating aura..."
)

// ViewModel is everything a renderer needs to draw the page. It holds no UI handles.
type ViewModel struct {
	State State

	Loading bool
	Status  string

	TriggerEnabled bool
	TriggerLabel   string

	ResultVisible bool
	ImageDataURI  string
	Zodiac        string
	Description   string

	ErrorVisible bool
	ErrorMessage string
}

// IdleView is the initial view model
func IdleView() ViewModel {
	return ViewModel{
		State:          StateIdle,
		TriggerEnabled: true,
		TriggerLabel:   TriggerLabel,
	}
}

// Renderer draws view models
type Renderer interface {
	Render(ViewModel)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(ViewModel)

func (f RendererFunc) Render(vm ViewModel) { f(vm) }
