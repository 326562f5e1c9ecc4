package mock

import "sync"

// Interceptor records calls made to a mock, by name
type Interceptor struct {
	m      sync.Mutex
	Events map[string][][]any
}

func NewInterceptor() *Interceptor {
	return &Interceptor{
		Events: make(map[string][][]any),
	}
}

func (i *Interceptor) Reset() {
	i.m.Lock()
	defer i.m.Unlock()

	i.Events = make(map[string][][]any)
}

func (i *Interceptor) Record(name string, args []any) {
	i.m.Lock()
	defer i.m.Unlock()

	i.Events[name] = append(i.Events[name], args)
}

// Count returns the number of times name was recorded
func (i *Interceptor) Count(name string) int {
	i.m.Lock()
	defer i.m.Unlock()

	return len(i.Events[name])
}
