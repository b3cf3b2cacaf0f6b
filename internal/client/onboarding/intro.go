package onboarding

type Slide struct {
	Title       string
	Description string
	Image       string
}

var introSlides = []Slide{
	{
		Title:       "Welcome to SikaCare",
		Description: "Your health in your hands. Reach quality medical services from the comfort of home.",
		Image:       "intro_1",
	},
	{
		Title:       "Virtual medical visits",
		Description: "Talk to health professionals around the clock. Private and secure consultations.",
		Image:       "intro_2",
	},
	{
		Title:       "Safe medical history",
		Description: "Keep your medical information organised and safe, ready when you need it.",
		Image:       "intro_3",
	},
}

// Intro pages through the fixed intro slides.
type Intro struct {
	pos int
}

func (i *Intro) Slides() []Slide { return introSlides }

func (i *Intro) Current() Slide { return introSlides[i.pos] }

// Index is zero-based.
func (i *Intro) Index() int { return i.pos }

func (i *Intro) IsLast() bool { return i.pos == len(introSlides)-1 }

// Next moves forward and reports whether it moved.
func (i *Intro) Next() bool {
	if i.IsLast() {
		return false
	}
	i.pos++
	return true
}

func (i *Intro) Previous() bool {
	if i.pos == 0 {
		return false
	}
	i.pos--
	return true
}
