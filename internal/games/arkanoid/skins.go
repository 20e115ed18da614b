package arkanoid

import "fmt"

// Skin is a cosmetic paddle image.
type Skin struct {
	Name string
	Path string
}

// skinCount is the number of paddle images shipped with the game.
const skinCount = 5

// PaddleSkins lists the selectable paddle skins.
var PaddleSkins = func() []Skin {
	out := make([]Skin, skinCount)
	for i := range out {
		out[i] = Skin{
			Name: fmt.Sprintf("Paddle %d", i+1),
			Path: fmt.Sprintf("skins/paddle%d.png", i+1),
		}
	}
	return out
}()

// ClampSkin maps any index onto the catalog.
func ClampSkin(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(PaddleSkins) {
		return len(PaddleSkins) - 1
	}
	return i
}
