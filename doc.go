/*
Package rotator is an interaction controller for a cyclic carousel of items (testimonials, slides, cards).

It arbitrates between three competing inputs that all want to change the active item: a periodic autoplay timer, pointer/touch swipe gestures, and explicit navigation (next, previous, jump to index). Every input is serialized through a single engine, so the carousel always shows exactly one item and announces a direction that matches the move.

# Concept

The Controller owns one carousel. Inputs become intents (Next, Prev, GotoIndex, SetAutoplay) that are applied one at a time by a pure transition function. Observers receive a Change (index, direction) once per applied transition, in application order. Rendering, animation and item content live outside the controller ("Host"): HTTP, MCP, a terminal demo or a Redis fan-out.

# Key Features

  - Cyclic navigation: Next/Previous wrap around; GoTo takes the shortest cyclic path.
  - Autoplay with pause/resume: the countdown restarts after every user-driven move.
  - Swipe recognition: travel beyond a threshold maps to Forward/Backward, honoring RTL or LTR reading.
  - Attention signals: touch and hover pause autoplay; a quiet period after a gesture resumes it.
  - Deterministic time: inject a clock.Fake to drive the scheduler in tests.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/rotator"
		"github.com/aretw0/rotator/pkg/domain"
	)

	func main() {
		c, err := rotator.New(5)
		if err != nil {
			log.Fatal(err)
		}
		defer c.Close()

		c.OnChange(func(ch domain.Change) {
			fmt.Println("now showing", ch.Index, ch.Direction)
		})

		ctx := context.Background()
		c.Next(ctx)
		if _, err := c.GoTo(ctx, 3); err != nil {
			log.Fatal(err)
		}
	}
*/
package rotator
