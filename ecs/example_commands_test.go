package ecs_test

import (
	"fmt"

	"github.com/plus3/leapfrog/ecs"
)

// ExampleRegistry shows the visibility rules of the registry. Added entities
// wait for the next Commit, removed entities disappear straight away.
func ExampleRegistry() {
	registry := ecs.NewRegistry()

	player, _ := registry.Add(ecs.NewEntity(ecs.KindPlayer))
	fmt.Println("before commit:", registry.Contains(player))

	registry.Commit()
	fmt.Println("after commit:", registry.Contains(player))

	registry.Remove(player)
	fmt.Println("after remove:", registry.Contains(player))

	// Output:
	// before commit: false
	// after commit: true
	// after remove: false
}

// ExampleRegistry_Defer shows adding entities while iterating. The new
// platforms are not visited by the running loop, and the deferred callback
// sees them once the commit has promoted them.
func ExampleRegistry_Defer() {
	registry := ecs.NewRegistry()
	for i := 0; i < 3; i++ {
		registry.Add(ecs.NewEntity(ecs.KindPlatform))
	}
	registry.Commit()

	visited := 0
	for range registry.OfKind(ecs.KindPlatform) {
		visited++
		registry.Add(ecs.NewEntity(ecs.KindPlatform))
	}

	registry.Defer(func() {
		fmt.Printf("platforms after commit: %d\n", registry.CountKind(ecs.KindPlatform))
	})

	fmt.Printf("visited: %d\n", visited)
	registry.Commit()

	// Output:
	// visited: 3
	// platforms after commit: 6
}
