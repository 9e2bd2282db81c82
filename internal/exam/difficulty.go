package exam

// DifficultyMode selects between a single level and a percentage split.
type DifficultyMode string

const (
	DifficultyFixed DifficultyMode = "fixed"
	DifficultyRatio DifficultyMode = "ratio"
)

// DifficultyPolicy is either Fixed{Level} or Ratio{Biet, Hieu}. The
// Vận dụng share of a ratio is always derived, never stored.
type DifficultyPolicy struct {
	Mode  DifficultyMode `json:"mode"`
	Level Level          `json:"level,omitempty"`
	Biet  int            `json:"biet,omitempty" validate:"gte=0,lte=100"`
	Hieu  int            `json:"hieu,omitempty" validate:"gte=0,lte=100"`
}

// Fixed returns a policy that puts every question at level l.
func Fixed(l Level) DifficultyPolicy {
	return DifficultyPolicy{Mode: DifficultyFixed, Level: l}
}

// Ratio returns a percentage policy; the remainder goes to Vận dụng.
func Ratio(biet, hieu int) DifficultyPolicy {
	return DifficultyPolicy{Mode: DifficultyRatio, Biet: biet, Hieu: hieu}
}

// VanDung returns max(0, 100 - Biet - Hieu).
func (p DifficultyPolicy) VanDung() int {
	rest := 100 - p.Biet - p.Hieu
	if rest < 0 {
		return 0
	}
	return rest
}

// RatioExceeded reports whether a ratio policy asks for more than 100%
// across Biết and Hiểu. Always false for fixed policies.
func (p DifficultyPolicy) RatioExceeded() bool {
	return p.Mode == DifficultyRatio && p.Biet+p.Hieu > 100
}
