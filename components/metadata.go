package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID           string  // Unique identifier
	Label        string  // Display name
	Format       string  // Printf format (e.g., "%.2f")
	Min          float64 // Minimum value (for bars)
	Max          float64 // Maximum value (for bars)
	IsCentered   bool    // True for centered bar display
	IsBar        bool    // True to render as progress bar
	ShowWhenZero bool    // Show even when value is zero
	Group        string  // Logical grouping
}

// UnitFieldDescriptors returns metadata for Unit fields.
// Field IDs must match cases in GetUnitValue().
func UnitFieldDescriptors(maxHealth float64) []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "health", Label: "Health", Format: "%.2f", Min: 0, Max: maxHealth, IsBar: true, ShowWhenZero: true, Group: "combat"},
		{ID: "state_time", Label: "State Time", Format: "%.2fs", Group: "combat"},
		{ID: "cooldown", Label: "Reload", Format: "%.2fs", Group: "combat"},
		{ID: "target_cooldown", Label: "Retarget", Format: "%.2fs", Group: "combat"},
		{ID: "size", Label: "Size", Format: "%.2f", Group: "body"},
	}
}

// MotionFieldDescriptors returns metadata for Motion fields.
func MotionFieldDescriptors(maxSpeed float64) []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "speed", Label: "Speed", Format: "%.2f", Min: 0, Max: maxSpeed, IsBar: true, Group: "motion"},
		{ID: "vel_x", Label: "Vel X", Format: "%+.2f", Min: -maxSpeed, Max: maxSpeed, IsCentered: true, IsBar: true, Group: "motion"},
		{ID: "vel_y", Label: "Vel Y", Format: "%+.2f", Min: -maxSpeed, Max: maxSpeed, IsCentered: true, IsBar: true, Group: "motion"},
	}
}

// GetUnitValue extracts a unit field value by ID.
func GetUnitValue(u *Unit, fieldID string) float64 {
	switch fieldID {
	case "health":
		return u.Health
	case "state_time":
		return u.StateTime
	case "cooldown":
		return u.Cooldown
	case "target_cooldown":
		return u.TargetCooldown
	case "size":
		return u.Size
	default:
		return 0
	}
}

// GetMotionValue extracts a motion field value by ID.
func GetMotionValue(m *Motion, fieldID string) float64 {
	switch fieldID {
	case "speed":
		return m.Speed()
	case "vel_x":
		return m.Velocity.X
	case "vel_y":
		return m.Velocity.Y
	default:
		return 0
	}
}
