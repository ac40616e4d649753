// Package measurements tracks costume measurements per member.
package measurements

import (
	"errors"
	"time"

	"github.com/sommertheater/portal/internal/pkg/validators"
)

var ErrNotFound = errors.New("measurement not found")

type Kind string

const (
	KindHeight    Kind = "height"
	KindChest     Kind = "chest"
	KindWaist     Kind = "waist"
	KindHips      Kind = "hips"
	KindInseam    Kind = "inseam"
	KindHead      Kind = "head"
	KindShoeSize  Kind = "shoe_size"
	KindDressSize Kind = "dress_size"
)

var AllKinds = []Kind{KindHeight, KindChest, KindWaist, KindHips, KindInseam, KindHead, KindShoeSize, KindDressSize}

type Unit string

const (
	UnitCM   Unit = "cm"
	UnitEU   Unit = "eu"
	UnitSize Unit = "size"
)

// DefaultUnit is the unit assumed when none is given.
func (k Kind) DefaultUnit() Unit {
	switch k {
	case KindShoeSize:
		return UnitEU
	case KindDressSize:
		return UnitSize
	}
	return UnitCM
}

// Measurement is one value per (user, kind).
type Measurement struct {
	ID         string  `validate:"required,uuid4"`
	UserID     string  `validate:"required,uuid4"`
	Kind       Kind    `validate:"required,oneof=height chest waist hips inseam head shoe_size dress_size"`
	Value      float64 `validate:"gt=0,lt=1000"`
	Unit       Unit    `validate:"required,oneof=cm eu size"`
	Notes      string  `validate:"omitempty,max=500"`
	MeasuredBy string  `validate:"omitempty,uuid4"`
	UpdatedAt  time.Time
}

// Validate for validating Measurement struct
func (m *Measurement) Validate() error {
	return validators.Struct(m)
}

// Input is a single measurement to record.
type Input struct {
	Kind  Kind    `json:"kind" validate:"required,oneof=height chest waist hips inseam head shoe_size dress_size"`
	Value float64 `json:"value" validate:"gt=0,lt=1000"`
	Unit  Unit    `json:"unit" validate:"omitempty,oneof=cm eu size"`
	Notes string  `json:"notes" validate:"omitempty,max=500"`
}

// Validate for validating Input struct
func (i *Input) Validate() error {
	return validators.Struct(i)
}

// ResolvedUnit returns the given unit or the kind's default.
func (i *Input) ResolvedUnit() Unit {
	if i.Unit != "" {
		return i.Unit
	}
	return i.Kind.DefaultUnit()
}
