package dynamics

import (
	"testing"

	"github.com/mkarren/nbodies/internal/geometry"
)

func TestDirectionOpposite(t *testing.T) {
	cases := []struct {
		d, want Direction
	}{
		{Hold, Hold},
		{Left, Right},
		{Right, Left},
		{Up, Down},
		{Down, Up},
		{UpLeft, DownRight},
		{UpRight, DownLeft},
		{DownLeft, UpRight},
		{DownRight, UpLeft},
	}
	for _, c := range cases {
		if got := c.d.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.d, got, c.want)
		}
		if got := c.d.Opposite().Opposite(); got != c.d {
			t.Errorf("%v: double opposite = %v", c.d, got)
		}
	}
}

func TestDirectionIsOpposite(t *testing.T) {
	if !Left.IsOpposite(Right) {
		t.Error("left and right are opposite")
	}
	if Left.IsOpposite(Up) {
		t.Error("left and up are not opposite")
	}
	// Hold opposes nothing, itself included.
	if Hold.IsOpposite(Hold) {
		t.Error("hold must not oppose hold")
	}
}

func TestDirectionVector(t *testing.T) {
	cases := []struct {
		d    Direction
		want geometry.Vector2
	}{
		{Hold, geometry.Vector2{}},
		{Right, geometry.Vector2{X: 1}},
		{Up, geometry.Vector2{Y: 1}},
		{DownLeft, geometry.Vector2{X: -1, Y: -1}},
	}
	for _, c := range cases {
		if got := c.d.Vector(); got != c.want {
			t.Errorf("%v.Vector() = %v, want %v", c.d, got, c.want)
		}
	}
}
