package fouriersynth

const (
	DefaultCosineLabel = "Cosinus:"
	DefaultSineLabel   = "Sinus:"

	// MaxLabelLen bounds a caption, in runes.
	MaxLabelLen = 20
)

// Labels are the captions above the cosine and sine columns.
type Labels struct {
	Cosine string
	Sine   string
}

// NewLabels applies the defaults for empty captions and truncates longer
// ones to MaxLabelLen runes.
func NewLabels(cosine, sine string) Labels {
	if cosine == "" {
		cosine = DefaultCosineLabel
	}
	if sine == "" {
		sine = DefaultSineLabel
	}
	return Labels{Cosine: truncate(cosine), Sine: truncate(sine)}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxLabelLen {
		return s
	}
	return string(r[:MaxLabelLen])
}
