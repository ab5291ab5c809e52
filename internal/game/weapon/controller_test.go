package weapon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/gt4500/internal/game/weapon"
)

//go:generate go run go.uber.org/mock/mockgen -destination mock_store_test.go -package weapon_test -write_package_comment=false github.com/cory-johannsen/gt4500/internal/game/weapon AmmunitionStore

type fixture struct {
	primary   *MockAmmunitionStore
	secondary *MockAmmunitionStore
	ctrl      *weapon.FiringController
}

func newFixture(t *testing.T, opts ...weapon.Option) fixture {
	t.Helper()
	mc := gomock.NewController(t)
	primary := NewMockAmmunitionStore(mc)
	secondary := NewMockAmmunitionStore(mc)
	opts = append([]weapon.Option{weapon.WithLogger(zaptest.NewLogger(t))}, opts...)
	return fixture{
		primary:   primary,
		secondary: secondary,
		ctrl:      weapon.NewFiringController(primary, secondary, opts...),
	}
}

type shotRecorder struct {
	shots []weapon.Shot
}

func (r *shotRecorder) ObserveShot(s weapon.Shot) {
	r.shots = append(r.shots, s)
}

// TestFireTorpedo_Single_Success verifies a fresh controller fires one torpedo
// from the primary store and never touches the secondary.
func TestFireTorpedo_Single_Success(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(true, nil).Times(1)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	require.NoError(t, err)
	assert.True(t, result)
	assert.Equal(t, weapon.PreferSecondary, f.ctrl.Preference())
}

// TestFireTorpedo_All_Success verifies each store is fired once with its own
// current count and the overall result is true.
func TestFireTorpedo_All_Success(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().Count().Return(3)
	f.secondary.EXPECT().Count().Return(2)
	f.primary.EXPECT().Fire(3).Return(true, nil).Times(1)
	f.secondary.EXPECT().Fire(2).Return(true, nil).Times(1)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeAll)

	require.NoError(t, err)
	assert.True(t, result)
	assert.Equal(t, weapon.PreferPrimary, f.ctrl.Preference(), "all-mode must not change the preference")
}

// TestFireTorpedo_Single_PrimaryError verifies a store error reaches the caller
// as the same value, unwrapped.
func TestFireTorpedo_Single_PrimaryError(t *testing.T) {
	f := newFixture(t)
	storeErr := &weapon.FireCountError{Requested: 1, Available: 0}
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(false, storeErr).Times(1)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	assert.False(t, result)
	require.ErrorIs(t, err, weapon.ErrInvalidFireCount)
	assert.Same(t, storeErr, err)
}

// TestFireTorpedo_Single_AlternatesToSecondary verifies the second single-shot
// request checks and fires the secondary store first after the primary fired.
func TestFireTorpedo_Single_AlternatesToSecondary(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.primary.EXPECT().IsEmpty().Return(false),
		f.primary.EXPECT().Fire(1).Return(true, nil),
		f.secondary.EXPECT().IsEmpty().Return(false),
		f.secondary.EXPECT().Fire(1).Return(true, nil),
	)

	first, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	second, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
	assert.Equal(t, weapon.PreferPrimary, f.ctrl.Preference())
}

// TestFireTorpedo_Single_SecondaryErrorAfterPrimary verifies an error raised by
// the secondary on the alternated request propagates to the caller.
func TestFireTorpedo_Single_SecondaryErrorAfterPrimary(t *testing.T) {
	f := newFixture(t)
	storeErr := &weapon.FireCountError{Requested: 1, Available: 0}
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(true, nil).Times(1)
	f.secondary.EXPECT().IsEmpty().Return(false)
	f.secondary.EXPECT().Fire(1).Return(false, storeErr).Times(1)

	_, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	assert.False(t, result)
	assert.ErrorIs(t, err, weapon.ErrInvalidFireCount)
	assert.Equal(t, weapon.PreferPrimary, f.ctrl.Preference(), "a dispatch that errors still flips the preference")
}

// TestFireTorpedo_Single_PrimaryJam verifies a jam is a plain false result.
func TestFireTorpedo_Single_PrimaryJam(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(false, nil).Times(1)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	require.NoError(t, err)
	assert.False(t, result)
}

// TestFireTorpedo_Single_SecondaryJam verifies a jam on the alternated request
// is reported as false after a successful primary shot.
func TestFireTorpedo_Single_SecondaryJam(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(true, nil)
	f.secondary.EXPECT().IsEmpty().Return(false)
	f.secondary.EXPECT().Fire(1).Return(false, nil).Times(1)

	primaryResult, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	secondaryResult, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)

	assert.True(t, primaryResult)
	assert.False(t, secondaryResult)
}

// TestFireTorpedo_Single_BothEmpty verifies exhaustion returns false without
// firing either store and leaves the preference untouched.
func TestFireTorpedo_Single_BothEmpty(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().IsEmpty().Return(true)
	f.secondary.EXPECT().IsEmpty().Return(true)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	require.NoError(t, err)
	assert.False(t, result)
	assert.Equal(t, weapon.PreferPrimary, f.ctrl.Preference())
}

// TestFireTorpedo_Single_PrimaryEmptyFallsBack verifies an empty primary hands
// the shot to the secondary, and the following request tries the primary first.
func TestFireTorpedo_Single_PrimaryEmptyFallsBack(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.primary.EXPECT().IsEmpty().Return(true),
		f.secondary.EXPECT().IsEmpty().Return(false),
		f.secondary.EXPECT().Fire(1).Return(true, nil),
		f.primary.EXPECT().IsEmpty().Return(true),
		f.secondary.EXPECT().IsEmpty().Return(false),
		f.secondary.EXPECT().Fire(1).Return(true, nil),
	)

	first, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	second, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, second)
}

// TestFireTorpedo_Single_SecondaryEmptyFallsBack verifies that when the
// preferred secondary is empty the primary is fired instead.
func TestFireTorpedo_Single_SecondaryEmptyFallsBack(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.primary.EXPECT().IsEmpty().Return(false),
		f.primary.EXPECT().Fire(1).Return(true, nil),
		f.secondary.EXPECT().IsEmpty().Return(true),
		f.primary.EXPECT().IsEmpty().Return(false),
		f.primary.EXPECT().Fire(1).Return(true, nil),
	)

	_, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	result, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)

	require.NoError(t, err)
	assert.True(t, result)
	assert.Equal(t, weapon.PreferSecondary, f.ctrl.Preference())
}

// TestFireTorpedo_All_JamStillFiresBoth verifies a primary jam does not stop
// the secondary from firing, and the overall result is false.
func TestFireTorpedo_All_JamStillFiresBoth(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().Count().Return(4)
	f.secondary.EXPECT().Count().Return(5)
	f.primary.EXPECT().Fire(4).Return(false, nil).Times(1)
	f.secondary.EXPECT().Fire(5).Return(true, nil).Times(1)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeAll)

	require.NoError(t, err)
	assert.False(t, result)
}

// TestFireTorpedo_All_SecondaryJam verifies a secondary jam fails the request.
func TestFireTorpedo_All_SecondaryJam(t *testing.T) {
	f := newFixture(t)
	f.primary.EXPECT().Count().Return(1)
	f.secondary.EXPECT().Count().Return(1)
	f.primary.EXPECT().Fire(1).Return(true, nil)
	f.secondary.EXPECT().Fire(1).Return(false, nil)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeAll)

	require.NoError(t, err)
	assert.False(t, result)
}

// TestFireTorpedo_All_PrimaryErrorAborts verifies an error from the primary
// stops the dispatch before the secondary is fired.
func TestFireTorpedo_All_PrimaryErrorAborts(t *testing.T) {
	f := newFixture(t)
	storeErr := &weapon.FireCountError{Requested: 0, Available: 0}
	f.primary.EXPECT().Count().Return(0)
	f.primary.EXPECT().Fire(0).Return(false, storeErr)
	f.secondary.EXPECT().Count().Return(3).AnyTimes()

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeAll)

	assert.False(t, result)
	assert.Same(t, storeErr, err)
}

// TestFireTorpedo_All_SecondaryError verifies an error from the secondary is
// returned after the primary fired.
func TestFireTorpedo_All_SecondaryError(t *testing.T) {
	f := newFixture(t)
	storeErr := &weapon.FireCountError{Requested: 0, Available: 0}
	f.primary.EXPECT().Count().Return(2)
	f.primary.EXPECT().Fire(2).Return(true, nil)
	f.secondary.EXPECT().Count().Return(0)
	f.secondary.EXPECT().Fire(0).Return(false, storeErr)

	result, err := f.ctrl.FireTorpedo(weapon.FiringModeAll)

	assert.False(t, result)
	assert.ErrorIs(t, err, weapon.ErrInvalidFireCount)
}

// TestFireTorpedo_UnknownMode verifies an unknown mode touches no store.
func TestFireTorpedo_UnknownMode(t *testing.T) {
	f := newFixture(t)

	result, err := f.ctrl.FireTorpedo(weapon.FiringMode("burst"))

	assert.False(t, result)
	assert.ErrorIs(t, err, weapon.ErrUnknownFiringMode)
}

// TestFireTorpedo_ObserverSeesEveryShot verifies observers receive one Shot per
// store dispatch, including failed ones.
func TestFireTorpedo_ObserverSeesEveryShot(t *testing.T) {
	rec := &shotRecorder{}
	f := newFixture(t, weapon.WithObserver(rec))
	f.primary.EXPECT().IsEmpty().Return(false)
	f.primary.EXPECT().Fire(1).Return(true, nil)
	f.primary.EXPECT().Count().Return(2)
	f.secondary.EXPECT().Count().Return(3)
	f.primary.EXPECT().Fire(2).Return(false, nil)
	f.secondary.EXPECT().Fire(3).Return(true, nil)

	_, err := f.ctrl.FireTorpedo(weapon.FiringModeSingle)
	require.NoError(t, err)
	_, err = f.ctrl.FireTorpedo(weapon.FiringModeAll)
	require.NoError(t, err)

	require.Len(t, rec.shots, 3)
	assert.Equal(t, weapon.Shot{Mode: weapon.FiringModeSingle, Store: weapon.RolePrimary, Count: 1, Fired: true}, rec.shots[0])
	assert.Equal(t, weapon.Shot{Mode: weapon.FiringModeAll, Store: weapon.RolePrimary, Count: 2, Fired: false}, rec.shots[1])
	assert.Equal(t, weapon.Shot{Mode: weapon.FiringModeAll, Store: weapon.RoleSecondary, Count: 3, Fired: true}, rec.shots[2])
}

// TestNewFiringController_PanicsOnNilStore verifies the non-nil precondition.
func TestNewFiringController_PanicsOnNilStore(t *testing.T) {
	mc := gomock.NewController(t)
	store := NewMockAmmunitionStore(mc)
	assert.Panics(t, func() { weapon.NewFiringController(nil, store) })
	assert.Panics(t, func() { weapon.NewFiringController(store, nil) })
}
