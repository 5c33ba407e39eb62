package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// AnchorStoreLoaded fires after the trust anchor store finished loading.
	// Parameters: positive key count, negative name count, skipped line count
	AnchorStoreLoaded = "anchor:storeLoaded"

	// AnchorLineSkipped fires for each anchor file line that had to be discarded.
	// Parameters: file path, reason
	AnchorLineSkipped = "anchor:lineSkipped"
)

// nolint:gochecknoglobals
var evtBus = EventBus.New()

// Bus returns the global event bus
func Bus() EventBus.Bus {
	return evtBus
}
