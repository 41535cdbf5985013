// Package anthropometry implements the body-composition engine: it takes a
// single measurement entry and derives proportion ratios, a body-shape
// classification, a somatotype estimate and coaching tips.
//
// Every stage is a pure function of its input. Nothing here touches the
// network, the database or any shared state; persistence and transport are
// the caller's job.
package anthropometry

import (
	"fmt"
	"strings"
	"time"
)

// Gender is the self-reported gender on a profile. It only influences the
// waist-hip threshold used by the shape classifier.
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderNonBinary   Gender = "non-binary"
	GenderUnspecified Gender = "unspecified"
)

// ParseGender maps free-form input to a Gender, defaulting to unspecified.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "female", "f", "woman":
		return GenderFemale
	case "male", "m", "man":
		return GenderMale
	case "non-binary", "nonbinary", "nb":
		return GenderNonBinary
	default:
		return GenderUnspecified
	}
}

// Canonical body-part measurement keys. Anything not in this set is rejected
// at ingestion with a warning rather than silently carried along.
const (
	KeyWaist      = "waist"
	KeyHip        = "hip"
	KeyChest      = "chest"
	KeyShoulder   = "shoulder"
	KeyNeck       = "neck"
	KeyWrist      = "wrist"
	KeyForearm    = "forearm"
	KeyLeftArm    = "leftArm"
	KeyRightArm   = "rightArm"
	KeyLeftThigh  = "leftThigh"
	KeyRightThigh = "rightThigh"
	KeyLeftCalf   = "leftCalf"
	KeyRightCalf  = "rightCalf"
)

// canonicalKeys maps a folded key (lowercase, separators stripped) to its
// canonical form. Folding makes "Left Arm", "left_arm" and "leftarm" equal.
var canonicalKeys = map[string]string{
	"waist":      KeyWaist,
	"hip":        KeyHip,
	"chest":      KeyChest,
	"shoulder":   KeyShoulder,
	"neck":       KeyNeck,
	"wrist":      KeyWrist,
	"forearm":    KeyForearm,
	"leftarm":    KeyLeftArm,
	"rightarm":   KeyRightArm,
	"leftthigh":  KeyLeftThigh,
	"rightthigh": KeyRightThigh,
	"leftcalf":   KeyLeftCalf,
	"rightcalf":  KeyRightCalf,
}

// aliases maps common alternative names onto canonical folded keys.
var aliases = map[string]string{
	"hips":      "hip",
	"bust":      "chest",
	"shoulders": "shoulder",
	"arm":       "leftarm",
	"thigh":     "leftthigh",
	"calf":      "leftcalf",
}

// NormalizeKey resolves a raw measurement key to its canonical form.
// Returns false if the key is not recognized.
func NormalizeKey(raw string) (string, bool) {
	folded := strings.ToLower(raw)
	folded = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, folded)
	if alias, ok := aliases[folded]; ok {
		folded = alias
	}
	key, ok := canonicalKeys[folded]
	return key, ok
}

// Profile carries the demographic fields the engine consumes.
// Age of zero means unreported.
type Profile struct {
	Gender Gender `json:"gender"`
	Age    int    `json:"age,omitempty"`
}

// BodyStats holds the two whole-body measurements. A zero value means the
// measurement is absent.
type BodyStats struct {
	HeightCm float64 `json:"heightCm,omitempty"`
	WeightKg float64 `json:"weightKg,omitempty"`
}

// Skinfolds are caliper readings in millimetres.
type Skinfolds struct {
	TricepsMm      float64 `json:"tricepsMm"`
	SubscapularMm  float64 `json:"subscapularMm"`
	SupraspinaleMm float64 `json:"supraspinaleMm"`
	CalfMm         float64 `json:"calfMm"`
}

// Circumferences are flexed-limb girths in centimetres.
type Circumferences struct {
	FlexedArmCm float64 `json:"flexedArmCm"`
	CalfCm      float64 `json:"calfCm"`
	ThighCm     float64 `json:"thighCm"`
}

// BoneBreadths are biepicondylar breadths in centimetres.
type BoneBreadths struct {
	HumerusCm float64 `json:"humerusCm"`
	FemurCm   float64 `json:"femurCm"`
}

// Advanced holds the optional anthropometric measurements needed for the
// exact Heath-Carter somatotype.
type Advanced struct {
	Skinfolds      *Skinfolds      `json:"skinfolds,omitempty"`
	Circumferences *Circumferences `json:"circumferences,omitempty"`
	BoneBreadths   *BoneBreadths   `json:"boneBreadths,omitempty"`
}

// BoneStructure is a self-reported frame size.
type BoneStructure string

const (
	BoneSmall  BoneStructure = "small"
	BoneMedium BoneStructure = "medium"
	BoneBroad  BoneStructure = "broad"
)

// Survey carries self-reported build cues used by the simplified
// somatotype heuristic.
type Survey struct {
	GainFatEasily    bool          `json:"gainFatEasily,omitempty"`
	GainMuscleEasily bool          `json:"gainMuscleEasily,omitempty"`
	HardToGainWeight bool          `json:"hardToGainWeight,omitempty"`
	BoneStructure    BoneStructure `json:"boneStructure,omitempty"`
}

// MeasurementEntry is the engine's input. It is never mutated after
// construction; every downstream stage produces a new derived record.
// Measurements are keyed by canonical body-part key, values in centimetres.
type MeasurementEntry struct {
	ID           string             `json:"id"`
	RecordedAt   time.Time          `json:"recordedAt"`
	Profile      Profile            `json:"profile"`
	BodyStats    BodyStats          `json:"bodyStats"`
	Measurements map[string]float64 `json:"measurements"`
	Advanced     *Advanced          `json:"advanced,omitempty"`
	Survey       *Survey            `json:"survey,omitempty"`
}

// Unit identifies a user-facing measurement unit accepted at ingestion.
type Unit string

const (
	UnitCentimetres Unit = "cm"
	UnitMetres      Unit = "m"
	UnitInches      Unit = "in"
	UnitKilograms   Unit = "kg"
	UnitPounds      Unit = "lb"
)

const (
	cmPerInch  = 2.54
	kgPerPound = 0.45359237
)

// ToCentimetres converts a length value to canonical centimetres.
func ToCentimetres(value float64, unit Unit) (float64, error) {
	switch unit {
	case UnitCentimetres, "":
		return value, nil
	case UnitMetres:
		return value * 100, nil
	case UnitInches:
		return value * cmPerInch, nil
	default:
		return 0, fmt.Errorf("unsupported length unit %q", unit)
	}
}

// ToKilograms converts a mass value to canonical kilograms.
func ToKilograms(value float64, unit Unit) (float64, error) {
	switch unit {
	case UnitKilograms, "":
		return value, nil
	case UnitPounds:
		return value * kgPerPound, nil
	default:
		return 0, fmt.Errorf("unsupported mass unit %q", unit)
	}
}

// RawMeasurement is one body-part reading as captured from the user,
// before key and unit normalisation.
type RawMeasurement struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit,omitempty"`
}

// NormalizeMeasurements converts raw readings into the canonical
// centimetre map keyed by recognized body-part keys. Unrecognized keys and
// unsupported units are dropped and reported as warnings.
func NormalizeMeasurements(raw map[string]RawMeasurement) (map[string]float64, []string) {
	out := make(map[string]float64, len(raw))
	var warnings []string
	for rawKey, m := range raw {
		key, ok := NormalizeKey(rawKey)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unrecognized measurement key %q dropped", rawKey))
			continue
		}
		cm, err := ToCentimetres(m.Value, m.Unit)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("measurement %q: %v", rawKey, err))
			continue
		}
		out[key] = cm
	}
	return out, warnings
}
