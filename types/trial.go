package types

import "time"

// RobotSettings holds the tuning parameters of one robot.
// Values are kept as entered; the club records them as free-form strings.
type RobotSettings struct {
	// Robot is the robot identifier and the row key.
	Robot string `json:"robot,omitempty" db:"robot"`

	// Speed is the configured base speed.
	Speed string `json:"speed" db:"speed"`

	// Kp is the proportional gain.
	Kp string `json:"kp" db:"kp"`

	// Kd is the derivative gain.
	Kd string `json:"kd" db:"kd"`

	// UpdatedAt is the timestamp of the last upsert.
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// SettingsSnapshot is the copy of a robot's tuning parameters embedded in a
// trial time at the moment it was recorded.
type SettingsSnapshot struct {
	Speed string `json:"speed"`
	Kp    string `json:"kp"`
	Kd    string `json:"kd"`
}

// Snapshot copies the tuning parameters into an immutable snapshot value.
func (s RobotSettings) Snapshot() SettingsSnapshot {
	return SettingsSnapshot{Speed: s.Speed, Kp: s.Kp, Kd: s.Kd}
}

// TrialTime is a single recorded run of a robot.
type TrialTime struct {
	// ID is the unique identifier of the record.
	ID int64 `json:"id" db:"id"`

	// Robot identifies the robot that made the run.
	Robot string `json:"robot" db:"robot"`

	// Time is the run time as formatted by the client.
	Time string `json:"time" db:"time"`

	// Username is the member who recorded the time.
	Username string `json:"username" db:"username"`

	// CreatedAt is the timestamp at which the time was recorded.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Settings is the robot settings snapshot taken at creation. Later
	// settings edits never change it.
	Settings SettingsSnapshot `json:"settings" db:"settings"`
}
