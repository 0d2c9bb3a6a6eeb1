package flatpaint

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want TransformKind
	}{
		{"identity", Identity(), TransformIdentity},
		{"pure translation", Translate(10, 20), TransformTranslate},
		{"zero translation", Translate(0, 0), TransformIdentity},
		{"uniform scale", Scale(2, 2), TransformScaleTranslate},
		{"non-uniform scale", Scale(3, 0.5), TransformScaleTranslate},
		{"scale + translate", Translate(10, 20).Multiply(Scale(2, 3)), TransformScaleTranslate},
		{"negative scale x", Scale(-1, 1), TransformGeneral},
		{"negative scale y", Scale(1, -1), TransformGeneral},
		{"rotation 45deg", Rotate(math.Pi / 4), TransformRotateTranslate},
		{"rotation 180deg", Rotate(math.Pi), TransformRotateTranslate},
		{"rotate about point", RotateAbout(math.Pi/3, 50, 50), TransformRotateTranslate},
		{"scale then rotate", Scale(2, 2).Multiply(Rotate(math.Pi / 6)), TransformGeneral},
		{"shear x", Shear(0.5, 0), TransformGeneral},
		{"zero matrix", Matrix{}, TransformGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Classify(); got != tt.want {
				t.Errorf("Matrix%+v.Classify() = %v, want %v", tt.m, got, tt.want)
			}
		})
	}
}

func TestMultiplyAppliesOtherFirst(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !got.Near(Pt(12, 2)) {
		t.Errorf("TransformPoint = %v, want (12, 2)", got)
	}

	m = Scale(2, 2).Multiply(Translate(10, 0))
	got = m.TransformPoint(Pt(1, 1))
	if !got.Near(Pt(22, 2)) {
		t.Errorf("TransformPoint = %v, want (22, 2)", got)
	}
}

func TestRotateAboutKeepsCenter(t *testing.T) {
	m := RotateAbout(math.Pi/2, 10, 10)
	if c := m.TransformPoint(Pt(10, 10)); !c.Near(Pt(10, 10)) {
		t.Errorf("center moved to %v", c)
	}
	if p := m.TransformPoint(Pt(20, 10)); !p.Near(Pt(10, 20)) {
		t.Errorf("TransformPoint(20, 10) = %v, want (10, 20)", p)
	}
}

func TestScaleFactorsAndRotation(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		sx, sy float64
		deg    float64
	}{
		{"identity", Identity(), 1, 1, 0},
		{"scale", Scale(3, 2), 3, 2, 0},
		{"rotate 30", Rotate(math.Pi / 6), 1, 1, 30},
		{"rotate -90", Rotate(-math.Pi / 2), 1, 1, -90},
		{"rotate 30 scaled", Rotate(math.Pi / 6).Multiply(Scale(2, 4)), 2, 4, 30},
	}
	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := tt.m.ScaleFactors()
			if math.Abs(sx-tt.sx) > eps || math.Abs(sy-tt.sy) > eps {
				t.Errorf("ScaleFactors() = (%v, %v), want (%v, %v)", sx, sy, tt.sx, tt.sy)
			}
			if got := tt.m.RotationDegrees(); math.Abs(got-tt.deg) > eps {
				t.Errorf("RotationDegrees() = %v, want %v", got, tt.deg)
			}
		})
	}
}

func TestFitRect(t *testing.T) {
	src := Bounds{X: 10, Y: 10, W: 100, H: 50}
	dst := Bounds{X: 0, Y: 100, W: 200, H: 200}
	m := FitRect(src, dst)

	if p := m.TransformPoint(Pt(10, 10)); !p.Near(Pt(0, 100)) {
		t.Errorf("top-left maps to %v", p)
	}
	if p := m.TransformPoint(Pt(110, 60)); !p.Near(Pt(200, 300)) {
		t.Errorf("bottom-right maps to %v", p)
	}
	if !FitRect(src, src).IsIdentity() {
		t.Error("FitRect(b, b) should be the identity")
	}
}
