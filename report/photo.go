package report

// PhotoPicker supplies a photo asset path. Camera capture and gallery
// selection are the two entry points the app wires in; both are permission
// gated the same way.
type PhotoPicker interface {
	Pick() (string, error)
}

// GatedPicker wraps a platform picker capability with its permission prompt.
// Launch returns the chosen asset path, or an empty string when the user
// cancels.
type GatedPicker struct {
	RequestPermission func() (bool, error)
	Launch            func() (string, error)
}

func (p GatedPicker) Pick() (string, error) {
	granted, err := p.RequestPermission()
	if err != nil {
		return "", err
	}
	if !granted {
		return "", ErrPermissionDenied
	}
	return p.Launch()
}

// FilePicker picks a fixed local file, the headless stand-in for a device
// picker.
type FilePicker struct {
	Path string
}

func (p FilePicker) Pick() (string, error) { return p.Path, nil }
