package changelog

import "github.com/RavelOrg/ravel"

type multi struct {
	recorders []ravel.Recorder
}

// Multi fans each entry out to every recorder in order, the recorder analog
// of io.MultiWriter. Nil recorders are skipped.
func Multi(recorders ...ravel.Recorder) ravel.Recorder {
	kept := make([]ravel.Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return multi{recorders: kept}
}

// Record implements ravel.Recorder.
func (m multi) Record(e ravel.Entry) {
	for _, r := range m.recorders {
		r.Record(e)
	}
}
