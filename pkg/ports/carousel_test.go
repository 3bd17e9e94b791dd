package ports_test

import (
	"github.com/aretw0/rotator"
	"github.com/aretw0/rotator/pkg/ports"
)

var _ ports.Carousel = (*rotator.Controller)(nil)
