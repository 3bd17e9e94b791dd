package rotator_test

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/pkg/clock"
	"github.com/aretw0/rotator/pkg/domain"
	"github.com/aretw0/rotator/pkg/gesture"
)

func Example() {
	fake := clock.NewFake()
	c, err := rotator.New(5, rotator.WithClock(fake), rotator.WithInterval(5*time.Second))
	if err != nil {
		panic(err)
	}
	defer c.Close()

	c.OnChange(func(ch domain.Change) {
		fmt.Printf("%d %s (%s)\n", ch.Index, ch.Direction, ch.Source)
	})

	ctx := context.Background()
	fake.Advance(5 * time.Second)
	c.Previous(ctx)
	c.GoTo(ctx, 4)

	// Output:
	// 1 forward (autoplay)
	// 0 backward (api)
	// 4 backward (api)
}

func ExampleController_PointerUp() {
	c, _ := rotator.New(3, rotator.WithReadingDirection(gesture.RTL), rotator.WithClock(clock.NewFake()))
	defer c.Close()

	c.PointerDown(300)
	fmt.Println(c.PointerUp(120), c.State().Index)

	// Output:
	// forward 1
}
