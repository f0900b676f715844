package templates

func f3(x, y, z float64) *[3]float64 { return &[3]float64{x, y, z} }

var (
	woodLight  = f3(0.76, 0.6, 0.42)
	woodMedium = f3(0.54, 0.36, 0.2)
	woodDark   = f3(0.3, 0.15, 0.05)
	stone      = f3(0.4, 0.4, 0.4)
	stoneDark  = f3(0.35, 0.35, 0.35)
)

// builtins are the scenes available without any template directory.
var builtins = []*Template{
	{
		Name:        "table_with_chairs",
		Description: "A wooden table with 4 chairs around it",
		Objects: []Object{
			{Name: "TableTop", Mesh: "box", Position: [3]float64{0, 0.75, 0}, Scale: f3(1.2, 0.05, 0.8), Color: woodMedium},
			{Name: "TableLeg1", Mesh: "box", Position: [3]float64{-0.5, 0.375, -0.3}, Scale: f3(0.06, 0.75, 0.06), Color: woodMedium},
			{Name: "TableLeg2", Mesh: "box", Position: [3]float64{0.5, 0.375, -0.3}, Scale: f3(0.06, 0.75, 0.06), Color: woodMedium},
			{Name: "TableLeg3", Mesh: "box", Position: [3]float64{-0.5, 0.375, 0.3}, Scale: f3(0.06, 0.75, 0.06), Color: woodMedium},
			{Name: "TableLeg4", Mesh: "box", Position: [3]float64{0.5, 0.375, 0.3}, Scale: f3(0.06, 0.75, 0.06), Color: woodMedium},
			{Name: "Chair1_Seat", Mesh: "box", Position: [3]float64{0, 0.45, -0.9}, Scale: f3(0.4, 0.05, 0.4), Color: woodDark},
			{Name: "Chair2_Seat", Mesh: "box", Position: [3]float64{0, 0.45, 0.9}, Scale: f3(0.4, 0.05, 0.4), Color: woodDark},
			{Name: "Chair3_Seat", Mesh: "box", Position: [3]float64{-0.9, 0.45, 0}, Scale: f3(0.4, 0.05, 0.4), Color: woodDark},
			{Name: "Chair4_Seat", Mesh: "box", Position: [3]float64{0.9, 0.45, 0}, Scale: f3(0.4, 0.05, 0.4), Color: woodDark},
		},
	},
	{
		Name:        "campfire",
		Description: "A campfire with logs arranged in a circle and a warm light",
		Objects: []Object{
			{Name: "FireLight", Type: "light", Position: [3]float64{0, 0.4, 0}, LightType: "Point", Color: f3(1.0, 0.5, 0.1), Intensity: 3.0, Range: 8.0},
			{Name: "Log1", Mesh: "cylinder", Position: [3]float64{0.25, 0.08, 0}, Scale: f3(0.08, 0.5, 0.08), RotationEuler: f3(0, 0, 75), Color: woodDark},
			{Name: "Log2", Mesh: "cylinder", Position: [3]float64{-0.25, 0.08, 0}, Scale: f3(0.08, 0.5, 0.08), RotationEuler: f3(0, 0, -75), Color: woodDark},
			{Name: "Log3", Mesh: "cylinder", Position: [3]float64{0, 0.08, 0.25}, Scale: f3(0.08, 0.5, 0.08), RotationEuler: f3(75, 0, 0), Color: woodDark},
			{Name: "Log4", Mesh: "cylinder", Position: [3]float64{0, 0.08, -0.25}, Scale: f3(0.08, 0.5, 0.08), RotationEuler: f3(-75, 0, 0), Color: woodDark},
			{Name: "Stone1", Mesh: "sphere", Position: [3]float64{0.4, 0.05, 0}, Scale: f3(0.12, 0.1, 0.12), Color: stone},
			{Name: "Stone2", Mesh: "sphere", Position: [3]float64{-0.4, 0.05, 0}, Scale: f3(0.12, 0.1, 0.12), Color: stone},
			{Name: "Stone3", Mesh: "sphere", Position: [3]float64{0, 0.05, 0.4}, Scale: f3(0.12, 0.1, 0.12), Color: stone},
			{Name: "Stone4", Mesh: "sphere", Position: [3]float64{0, 0.05, -0.4}, Scale: f3(0.12, 0.1, 0.12), Color: stone},
			{Name: "Stone5", Mesh: "sphere", Position: [3]float64{0.28, 0.05, 0.28}, Scale: f3(0.1, 0.08, 0.1), Color: stoneDark},
			{Name: "Stone6", Mesh: "sphere", Position: [3]float64{-0.28, 0.05, 0.28}, Scale: f3(0.1, 0.08, 0.1), Color: stoneDark},
			{Name: "Stone7", Mesh: "sphere", Position: [3]float64{0.28, 0.05, -0.28}, Scale: f3(0.1, 0.08, 0.1), Color: stoneDark},
			{Name: "Stone8", Mesh: "sphere", Position: [3]float64{-0.28, 0.05, -0.28}, Scale: f3(0.1, 0.08, 0.1), Color: stoneDark},
		},
	},
	{
		Name:        "simple_room",
		Description: "A simple room with floor, ceiling, and 4 walls",
		Objects: []Object{
			{Name: "Floor", Mesh: "box", Position: [3]float64{0, 0, 0}, Scale: f3(4, 0.1, 4), Color: woodLight},
			{Name: "Ceiling", Mesh: "box", Position: [3]float64{0, 3, 0}, Scale: f3(4, 0.1, 4), Color: f3(0.9, 0.9, 0.9)},
			{Name: "WallNorth", Mesh: "box", Position: [3]float64{0, 1.5, -2}, Scale: f3(4, 3, 0.1), Color: f3(0.85, 0.85, 0.8)},
			{Name: "WallSouth", Mesh: "box", Position: [3]float64{0, 1.5, 2}, Scale: f3(4, 3, 0.1), Color: f3(0.85, 0.85, 0.8)},
			{Name: "WallEast", Mesh: "box", Position: [3]float64{2, 1.5, 0}, Scale: f3(0.1, 3, 4), Color: f3(0.85, 0.85, 0.8)},
			{Name: "WallWest", Mesh: "box", Position: [3]float64{-2, 1.5, 0}, Scale: f3(0.1, 3, 4), Color: f3(0.85, 0.85, 0.8)},
			{Name: "CeilingLight", Type: "light", Position: [3]float64{0, 2.8, 0}, LightType: "Point", Color: f3(1.0, 0.95, 0.9), Intensity: 2.0, Range: 6.0},
		},
	},
	{
		Name:        "lamp",
		Description: "A standing lamp with light",
		Objects: []Object{
			{Name: "LampBase", Mesh: "cylinder", Position: [3]float64{0, 0.02, 0}, Scale: f3(0.2, 0.04, 0.2), Color: f3(0.2, 0.2, 0.2)},
			{Name: "LampPole", Mesh: "cylinder", Position: [3]float64{0, 0.7, 0}, Scale: f3(0.03, 1.4, 0.03), Color: f3(0.3, 0.3, 0.3)},
			{Name: "LampShade", Mesh: "cone", Position: [3]float64{0, 1.4, 0}, Scale: f3(0.25, 0.2, 0.25), Color: f3(0.9, 0.85, 0.7)},
			{Name: "LampLight", Type: "light", Position: [3]float64{0, 1.35, 0}, LightType: "Point", Color: f3(1.0, 0.95, 0.8), Intensity: 1.5, Range: 4.0},
		},
	},
	{
		Name:        "staircase",
		Description: "A simple staircase with 6 steps",
		Objects: []Object{
			{Name: "Step1", Mesh: "box", Position: [3]float64{0, 0.1, 0}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
			{Name: "Step2", Mesh: "box", Position: [3]float64{0, 0.3, 0.3}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
			{Name: "Step3", Mesh: "box", Position: [3]float64{0, 0.5, 0.6}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
			{Name: "Step4", Mesh: "box", Position: [3]float64{0, 0.7, 0.9}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
			{Name: "Step5", Mesh: "box", Position: [3]float64{0, 0.9, 1.2}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
			{Name: "Step6", Mesh: "box", Position: [3]float64{0, 1.1, 1.5}, Scale: f3(1, 0.2, 0.3), Color: woodMedium},
		},
	},
	{
		Name:        "spotlight_stage",
		Description: "A simple stage with 3 spotlights",
		Objects: []Object{
			{Name: "Stage", Mesh: "box", Position: [3]float64{0, 0.15, 0}, Scale: f3(4, 0.3, 3), Color: f3(0.2, 0.15, 0.1)},
			{Name: "SpotlightLeft", Type: "light", Position: [3]float64{-1.5, 3, -1}, LightType: "Spot", Color: f3(1.0, 0.3, 0.3), Intensity: 5.0, Range: 6.0},
			{Name: "SpotlightCenter", Type: "light", Position: [3]float64{0, 3, -1}, LightType: "Spot", Color: f3(1.0, 1.0, 1.0), Intensity: 5.0, Range: 6.0},
			{Name: "SpotlightRight", Type: "light", Position: [3]float64{1.5, 3, -1}, LightType: "Spot", Color: f3(0.3, 0.3, 1.0), Intensity: 5.0, Range: 6.0},
		},
	},
}
