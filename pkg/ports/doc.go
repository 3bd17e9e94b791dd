/*
Package ports defines the driven ports (interfaces) around a carousel controller.

These interfaces decouple the host adapters (HTTP, MCP, Redis, the terminal
demo) from the concrete controller and item sources.

# Key Interfaces

  - Carousel: The navigation and attention surface of a controller (implemented by *rotator.Controller).
  - DeckSource: Loads the items a carousel rotates through (YAML file, Loam directory).
  - ChangePublisher: Fans applied changes out to remote observers (e.g. Redis).
*/
package ports
