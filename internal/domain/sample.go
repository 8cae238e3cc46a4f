package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Pronation is the foot-roll pattern observed during stance.
type Pronation string

// Possible pronation values
const (
	PronationNeutral Pronation = "neutral"
	PronationOver    Pronation = "over"
	PronationUnder   Pronation = "under"
)

// Surface is the ground a session was run on.
type Surface string

// Possible surfaces
const (
	SurfaceRoad      Surface = "road"
	SurfaceTrail     Surface = "trail"
	SurfaceTrack     Surface = "track"
	SurfaceTreadmill Surface = "treadmill"
	SurfaceGrass     Surface = "grass"
)

// Weather is the dominant condition during a session.
type Weather string

// Possible weather conditions
const (
	WeatherSunny  Weather = "sunny"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
	WeatherHot    Weather = "hot"
	WeatherCold   Weather = "cold"
	WeatherWindy  Weather = "windy"
)

// Biomechanics holds gait measurements for the day.
type Biomechanics struct {
	Cadence             float64   `json:"cadence" validate:"gte=0"`
	GroundContactTime   float64   `json:"ground_contact_time" validate:"gte=0"`
	VerticalOscillation float64   `json:"vertical_oscillation" validate:"gte=0"`
	Pronation           Pronation `json:"pronation" validate:"oneof=neutral over under"`
	Symmetry            float64   `json:"symmetry" validate:"gte=0,lte=100"`
}

// Training holds load measurements for the day.
type Training struct {
	WeeklyDistance  float64 `json:"weekly_distance" validate:"gte=0"`
	WeeklyIntensity float64 `json:"weekly_intensity" validate:"gte=0,lte=100"`
	RestDays        int     `json:"rest_days" validate:"gte=0,lte=7"`
	ConsecutiveDays int     `json:"consecutive_days" validate:"gte=0"`
}

// Physiology holds recovery and wellness measurements for the day.
type Physiology struct {
	Fatigue      float64 `json:"fatigue" validate:"gte=0,lte=100"`
	SleepQuality float64 `json:"sleep_quality" validate:"gte=0,lte=100"`
	HRV          float64 `json:"hrv" validate:"gte=0"`
	Stress       float64 `json:"stress" validate:"gte=0,lte=100"`
}

// Environment holds the conditions a session was run in.
type Environment struct {
	Surface   Surface `json:"surface" validate:"oneof=road trail track treadmill grass"`
	Weather   Weather `json:"weather" validate:"oneof=sunny cloudy rainy hot cold windy"`
	Elevation float64 `json:"elevation" validate:"gte=0"`
}

// DailySample is one day of captured data for a user. Samples are created
// at ingestion and never mutated afterwards.
type DailySample struct {
	UserID       string       `json:"user_id" validate:"required"`
	Timestamp    time.Time    `json:"timestamp" validate:"required"`
	Biomechanics Biomechanics `json:"biomechanics"`
	Training     Training     `json:"training"`
	Physiology   Physiology   `json:"physiology"`
	Environment  Environment  `json:"environment"`
}

var sampleValidator = newSampleValidator()

func newSampleValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks if the DailySample has valid data.
// It returns a *ValidationError describing the first offending field.
func (s *DailySample) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return NewValidationError("user_id", "cannot be empty", ErrEmptyUserID)
	}
	if s.Timestamp.IsZero() {
		return NewValidationError("timestamp", "cannot be zero", ErrMissingTimestamp)
	}

	for name, value := range s.numericFields() {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return NewValidationError(name, "must be a finite number", ErrInvalidValue)
		}
	}

	if err := sampleValidator.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return NewValidationError(
				trimNamespace(fe.Namespace()),
				fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
				ErrInvalidValue,
			)
		}
		return NewValidationError("", err.Error(), ErrInvalidValue)
	}

	return nil
}

// numericFields lists the float-valued measurements keyed by their JSON path.
func (s *DailySample) numericFields() map[string]float64 {
	return map[string]float64{
		"biomechanics.cadence":              s.Biomechanics.Cadence,
		"biomechanics.ground_contact_time":  s.Biomechanics.GroundContactTime,
		"biomechanics.vertical_oscillation": s.Biomechanics.VerticalOscillation,
		"biomechanics.symmetry":             s.Biomechanics.Symmetry,
		"training.weekly_distance":          s.Training.WeeklyDistance,
		"training.weekly_intensity":         s.Training.WeeklyIntensity,
		"physiology.fatigue":                s.Physiology.Fatigue,
		"physiology.sleep_quality":          s.Physiology.SleepQuality,
		"physiology.hrv":                    s.Physiology.HRV,
		"physiology.stress":                 s.Physiology.Stress,
		"environment.elevation":             s.Environment.Elevation,
	}
}

// trimNamespace drops the root struct name from a validator namespace,
// e.g. "DailySample.physiology.fatigue" becomes "physiology.fatigue".
func trimNamespace(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
