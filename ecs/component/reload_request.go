package component

// ReloadRequest is a marker asking the game loop to rebuild the stress meter
// from its prefab. The prefab watcher creates a short-lived entity with it.
type ReloadRequest struct {
	Path string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
