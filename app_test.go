package portfolio

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: StateMounting,
		state:        StateMounting,
		finalState:   StateUnmounted,
	}

	app.changeState(StateMounted)
	if app.nextState != StateMounted {
		t.Errorf("The nextState should be set correctly.")
	}
	if !app.stateTransitioning {
		t.Errorf("The stateTransitioning flag should be true.")
	}

	app.executeChangeState(StateMounted)
	if app.state != StateMounted {
		t.Errorf("The app state should change correctly.")
	}
}

func TestApp_changeStateKeepsPendingUnmount(t *testing.T) {
	app := &App{stateful: true, initialState: StateMounting, finalState: StateUnmounted}

	app.changeState(StateUnmounted)
	app.changeState(StateMounted)

	assert.Equal(t, StateUnmounted, app.nextState)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	require.Panics(t, func() { app.addResources(MockResource2{}) }, "non-pointer resources are rejected")
}

func TestResource(t *testing.T) {
	app := newApp()
	r := NewMockResource1("r")
	app.addResources(r)

	got, ok := Resource[MockResource1](app)
	require.True(t, ok)
	assert.Same(t, r, got)

	_, ok = Resource[MockResource2](app)
	assert.False(t, ok)
}

func TestApp_systemInjection(t *testing.T) {
	app := NewAppBuilder().Build()
	r := NewMockResource1("before")
	app.addResources(r)

	var sawCommands bool
	app.UseSystem(System(func(res *MockResource1, cmd *Commands) {
		res.name = "after"
		sawCommands = cmd != nil
	}))
	app.Step()

	assert.Equal(t, "after", r.name)
	assert.True(t, sawCommands)
}

func TestApp_systemMissingDependencyPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	app.UseSystem(System(func(*MockResource2) {}))

	assert.Panics(t, func() { app.Step() })
}

func TestApp_stageOrder(t *testing.T) {
	app := NewAppBuilder().Build()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	app.UseSystem(System(record("render")).InStage(Render))
	app.UseSystem(System(record("prelude")).InStage(Prelude))
	app.UseSystem(System(record("update")).InStage(Update))

	custom := Stage{Name: "Late"}
	app.UseStage(custom, AfterStage(Finale))
	app.UseSystem(System(record("late")).InStage(custom))

	app.Step()
	assert.Equal(t, []string{"prelude", "update", "render", "late"}, order)

	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(record("x")).InStage(Stage{Name: "Missing"})) })
}

func TestApp_statefulSystemInStatelessAppPanics(t *testing.T) {
	app := NewAppBuilder().Build()
	assert.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		app.UseSystem(System(func() {}).InState(OnEnter(StateMounted)))
	})
}

func TestApp_lifecyclePhases(t *testing.T) {
	app := NewAppBuilder().UseLifecycleStates().Build()
	var events []string
	on := func(name string) func() {
		return func() { events = append(events, name) }
	}

	app.UseSystem(System(on("enter mounting")).InState(OnEnter(StateMounting)))
	app.UseSystem(System(on("exec mounting")).InState(OnExecute(StateMounting)))
	app.UseSystem(System(on("exit mounting")).InState(OnExit(StateMounting)))
	app.UseSystem(System(on("enter mounted")).InState(OnEnter(StateMounted)))
	app.UseSystem(System(on("exec mounted")).InState(OnExecute(StateMounted)))
	app.UseSystem(System(on("exit mounted")).InState(OnExit(StateMounted)))
	app.UseSystem(System(on("enter unmounted")).InState(OnEnter(StateUnmounted)))
	app.UseSystem(System(on("exit unmounted")).InState(OnExit(StateUnmounted)))
	app.UseSystem(System(func(cmd *Commands) { cmd.ChangeState(StateMounted) }).
		InStage(Finale).InState(OnExecute(StateMounting)))

	require.True(t, app.Step())
	assert.Equal(t, StateMounted, app.State())
	require.True(t, app.Step())

	app.Unmount()
	assert.False(t, app.Step())
	assert.True(t, app.Done())
	assert.False(t, app.Step(), "finished apps stay finished")

	assert.Equal(t, []string{
		"enter mounting",
		"exec mounting",
		"exit mounting",
		"enter mounted",
		"exec mounted",
		"exec mounted",
		"exit mounted",
		"enter unmounted",
		"exit unmounted",
	}, events)
}

func TestApp_runStopsAtFinalState(t *testing.T) {
	app := NewAppBuilder().UseLifecycleStates().Build()
	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Unmount()
		}
	}).RunAlways())

	app.Run()
	assert.Equal(t, 3, frames)
	assert.Equal(t, StateUnmounted, app.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "mounting", StateMounting.String())
	assert.Equal(t, "mounted", StateMounted.String())
	assert.Equal(t, "unmounted", StateUnmounted.String())
	assert.Equal(t, "State(9)", State(9).String())
}
