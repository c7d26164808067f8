package platform

// Built-in platform topologies. Slot counts and physical port layouts come
// from the vendor's published hardware tables; the slot virtual port letter
// set (A-D) is common to all platforms.
var builtinSpecs = []Spec{
	{
		ID:              "go",
		Name:            "Moku:Go",
		Slots:           2,
		PhysicalInputs:  []string{"IN1", "IN2"},
		PhysicalOutputs: []string{"OUT1", "OUT2"},
		MaxConnections:  16,
	},
	{
		ID:              "lab",
		Name:            "Moku:Lab",
		Slots:           4,
		PhysicalInputs:  []string{"IN1", "IN2", "IN3", "IN4"},
		PhysicalOutputs: []string{"OUT1", "OUT2", "OUT3", "OUT4"},
		MaxConnections:  32,
	},
	{
		ID:              "pro",
		Name:            "Moku:Pro",
		Slots:           4,
		PhysicalInputs:  []string{"IN1", "IN2", "IN3", "IN4"},
		PhysicalOutputs: []string{"OUT1", "OUT2", "OUT3", "OUT4"},
		MaxConnections:  32,
	},
	{
		ID:              "delta",
		Name:            "Moku:Delta",
		Slots:           3,
		PhysicalInputs:  []string{"IN1", "IN2", "IN3", "IN4", "IN5", "IN6", "IN7", "IN8"},
		PhysicalOutputs: []string{"OUT1", "OUT2", "OUT3", "OUT4", "OUT5", "OUT6", "OUT7", "OUT8"},
		MaxConnections:  64,
	},
}
