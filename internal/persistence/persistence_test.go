package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/acroloop/acroloop/internal/pid"
	"github.com/stretchr/testify/assert"
)

var (
	testProfile = pid.TuningProfile{
		P8:      [pid.AxisCount]uint8{40, 40, 85},
		I8:      [pid.AxisCount]uint8{30, 30, 45},
		D8:      [pid.AxisCount]uint8{23, 23, 0},
		LevelP8: 90,
		LevelI8: 10,
		LevelD8: 100,

		Pf: [pid.AxisCount]float64{1.4, 1.4, 2.5},
		If: [pid.AxisCount]float64{0.4, 0.4, 1.0},
		Df: [pid.AxisCount]float64{0.03, 0.03, 0},

		LevelAngle:         5.0,
		LevelHorizon:       3.0,
		HorizonSensitivity: 75,
	}
)

func testPersistence(t *testing.T) Persistence {
	return NewPersistence(filepath.Join(t.TempDir(), "test.db"))
}

func TestPersistence_SaveProfile(t *testing.T) {
	// GIVEN
	p := testPersistence(t)

	// WHEN
	err := p.SaveProfile("rehearsal", testProfile)

	// THEN
	assert.Nil(t, err)
}

func TestPersistence_LoadProfile(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	err := p.SaveProfile("rehearsal", testProfile)
	assert.NoError(t, err)

	// WHEN
	loaded, err := p.LoadProfile("rehearsal")

	// THEN
	assert.Nil(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, testProfile, *loaded)
}

func TestPersistence_LoadProfile_Missing(t *testing.T) {
	// GIVEN
	p := testPersistence(t)

	// WHEN
	loaded, err := p.LoadProfile("does-not-exist")

	// THEN
	assert.Nil(t, loaded)
	assert.Error(t, err)
}

func TestPersistence_DeleteProfile(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	_ = p.SaveProfile("rehearsal", testProfile)

	// WHEN
	err := p.DeleteProfile("rehearsal")
	assert.NoError(t, err)

	// THEN
	loaded, err := p.LoadProfile("rehearsal")
	assert.Nil(t, loaded)
	assert.Error(t, err)
}

func TestPersistence_ListProfiles(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	_ = p.SaveProfile("indoor", testProfile)
	_ = p.SaveProfile("outdoor", testProfile)

	// WHEN
	names, err := p.ListProfiles()

	// THEN
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"indoor", "outdoor"}, names)
}

func TestPersistence_SaveAndLoadBlackboxSession(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	session := BlackboxSession{
		ID:         "session-1",
		StartedAt:  time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC),
		Controller: "mwrewrite",
		Frames: []BlackboxFrame{
			{
				TimeUs:  2048,
				Command: [pid.AxisCount]int{0, 0, 100},
				GyroRaw: [pid.AxisCount]int32{4, -4, 0},
				Terms: [pid.AxisCount]pid.AxisTerms{
					{P: 10, I: 1, D: -3},
					{P: -10, I: -1, D: 3},
					{P: 250, I: 5, D: 0},
				},
				Demand: [pid.AxisCount]int32{8, -8, 255},
			},
		},
	}

	// WHEN
	err := p.SaveBlackboxSession(session)
	assert.NoError(t, err)
	loaded, err := p.LoadBlackboxSession("session-1")

	// THEN
	assert.Nil(t, err)
	assert.NotNil(t, loaded)
	assert.Equal(t, session, *loaded)
}

func TestPersistence_DeleteBlackboxSession(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	_ = p.SaveBlackboxSession(BlackboxSession{ID: "session-1"})

	// WHEN
	err := p.DeleteBlackboxSession("session-1")
	assert.NoError(t, err)

	// THEN
	loaded, err := p.LoadBlackboxSession("session-1")
	assert.Nil(t, loaded)
	assert.Error(t, err)
}

func TestPersistence_ListBlackboxSessions(t *testing.T) {
	// GIVEN
	p := testPersistence(t)
	_ = p.SaveBlackboxSession(BlackboxSession{ID: "a"})
	_ = p.SaveBlackboxSession(BlackboxSession{ID: "b"})

	// WHEN
	ids, err := p.ListBlackboxSessions()

	// THEN
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
