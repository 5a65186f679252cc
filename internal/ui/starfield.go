package ui

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-stellar/internal/fixed"
	"github.com/litescript/ls-stellar/internal/state"
	"github.com/litescript/ls-stellar/internal/universe"
)

const (
	// Field of view in degrees.
	fovAz = 120.0 // horizontal
	fovEl = 60.0  // vertical

	// Light glyphs by attenuated brightness.
	glyphBright   = '✦'
	glyphMedium   = '✶'
	glyphDim      = '·'
	glyphImpostor = '◌'

	// Brightness tiers are in the same units the octree culls with.
	tierBright = 1.0
	tierMedium = 0.01
)

var (
	styleBright   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	styleDim      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleImpostor = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	styleWarm     = lipgloss.NewStyle().Foreground(lipgloss.Color("216"))
	styleCool     = lipgloss.NewStyle().Foreground(lipgloss.Color("153"))
)

// defaultMoveStep is the starting camera speed in metres per keypress:
// one astronomical unit.
const defaultMoveStep = 1.496e11

// StarfieldModel renders the visible lights around the camera.
type StarfieldModel struct {
	width  int
	height int

	// Camera position in fixed-point metres and orientation in degrees.
	position fixed.Vec3
	camAz    float64
	camEl    float64

	moveStep  float64 // metres per keypress
	fovFactor float64

	snapshot state.Snapshot
}

// NewStarfieldModel creates a starfield view centred near the origin.
func NewStarfieldModel() StarfieldModel {
	return StarfieldModel{
		position:  fixed.FromFloat64s(1.543e11, 0, 1.0e17),
		moveStep:  defaultMoveStep,
		fovFactor: 1.0,
	}
}

// SetSize updates the view dimensions.
func (m StarfieldModel) SetSize(w, h int) StarfieldModel {
	m.width = w
	m.height = h
	return m
}

// SetSnapshot updates the rendered data.
func (m StarfieldModel) SetSnapshot(snap state.Snapshot) StarfieldModel {
	m.snapshot = snap
	return m
}

// Viewpoint returns the visibility request for the current camera.
func (m StarfieldModel) Viewpoint() universe.Viewpoint {
	return universe.Viewpoint{Position: m.position, FovFactor: m.fovFactor}
}

// HandleKey processes camera movement keys.
func (m StarfieldModel) HandleKey(msg tea.KeyMsg) StarfieldModel {
	switch msg.String() {
	case "left":
		m.camAz = normalizeAngle(m.camAz - 5)
	case "right":
		m.camAz = normalizeAngle(m.camAz + 5)
	case "up":
		m.camEl = math.Min(m.camEl+5, 89)
	case "down":
		m.camEl = math.Max(m.camEl-5, -89)
	case "w":
		m.position = m.position.Add(m.forward(m.moveStep))
	case "s":
		m.position = m.position.Add(m.forward(-m.moveStep))
	case ">":
		m.moveStep = math.Min(m.moveStep*10, 1e26)
	case "<":
		m.moveStep = math.Max(m.moveStep/10, 1)
	case "+", "=":
		m.fovFactor = math.Min(m.fovFactor*2, 1e6)
	case "-", "_":
		m.fovFactor = math.Max(m.fovFactor/2, 1e-6)
	}
	return m
}

// forward is the camera's view direction scaled to dist metres.
func (m StarfieldModel) forward(dist float64) fixed.Vec3 {
	azRad := m.camAz * math.Pi / 180
	elRad := m.camEl * math.Pi / 180
	return fixed.FromFloat64s(
		dist*math.Cos(elRad)*math.Sin(azRad),
		dist*math.Sin(elRad),
		dist*math.Cos(elRad)*math.Cos(azRad),
	)
}

// View renders the starfield grid.
func (m StarfieldModel) View() string {
	if m.width < 4 || m.height < 2 {
		return ""
	}

	type cell struct {
		glyph      rune
		style      lipgloss.Style
		brightness float64
	}
	grid := make([]cell, m.width*m.height)

	for _, batch := range m.snapshot.Result.Batches {
		for _, light := range batch.Bodies {
			dx, dy, dz := light.Position.Sub(m.position).Float64s()
			dist := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if dist == 0 {
				continue
			}

			az := math.Atan2(dx, dz) * 180 / math.Pi
			el := math.Asin(dy/dist) * 180 / math.Pi

			relAz := normalizeAngle(az - m.camAz)
			relEl := el - m.camEl
			if math.Abs(relAz) > fovAz/2 || math.Abs(relEl) > fovEl/2 {
				continue
			}

			col := int((relAz/fovAz + 0.5) * float64(m.width-1))
			row := int((0.5 - relEl/fovEl) * float64(m.height-1))
			if col < 0 || col >= m.width || row < 0 || row >= m.height {
				continue
			}

			falloff := 1 + dist
			brightness := light.Colour.Max() / (falloff * falloff)

			idx := row*m.width + col
			if grid[idx].glyph != 0 && grid[idx].brightness >= brightness {
				continue
			}
			grid[idx] = cell{
				glyph:      lightGlyph(light.IsBody, brightness),
				style:      lightStyle(light.IsBody, brightness, light.Colour.R, light.Colour.B),
				brightness: brightness,
			}
		}
	}

	var sb strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			c := grid[row*m.width+col]
			if c.glyph == 0 {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(c.style.Render(string(c.glyph)))
		}
		if row < m.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func lightGlyph(isBody bool, brightness float64) rune {
	if !isBody {
		return glyphImpostor
	}
	switch {
	case brightness >= tierBright:
		return glyphBright
	case brightness >= tierMedium:
		return glyphMedium
	default:
		return glyphDim
	}
}

func lightStyle(isBody bool, brightness, r, b float64) lipgloss.Style {
	if !isBody {
		return styleImpostor
	}
	// Tint clearly red or blue stars; brightness picks the gray otherwise.
	switch {
	case r > 2*b:
		return styleWarm
	case b > 2*r:
		return styleCool
	case brightness >= tierBright:
		return styleBright
	case brightness >= tierMedium:
		return styleMedium
	default:
		return styleDim
	}
}

// normalizeAngle wraps an angle in degrees to (-180, 180].
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
