/*
Package domain contains the core domain models of the rotator carousel controller.

It defines the carousel state, the intents that change it and the events emitted
after each applied transition. This package is kept pure and free of external
dependencies like timers, I/O or transports, following Hexagonal Architecture
principles.

# Key Entities

  - State: Captures the runtime snapshot of a carousel (Index, Direction, Autoplay, Epoch).
  - Intent: A requested state change (Next, Prev, GotoIndex, SetAutoplay).
  - Direction: The travel direction of the last applied transition.
  - Change: The notification handed to renderers after a transition is applied.
*/
package domain
