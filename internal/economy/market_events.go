package economy

// Events returns a copy of the active event list in insertion order.
func (r *Region) Events() []*MarketEvent {
	return append([]*MarketEvent(nil), r.events...)
}

// HasEvent reports whether an event with the key is active.
func (r *Region) HasEvent(key EventKey) bool {
	for _, e := range r.events {
		if e.Key() == key {
			return true
		}
	}
	return false
}

// AddEvent appends e unless an event with the same key is active.
func (r *Region) AddEvent(e *MarketEvent) bool {
	if r.HasEvent(e.Key()) {
		return false
	}
	r.events = append(r.events, e)
	return true
}

// FindEvent returns the first active event of type t.
func (r *Region) FindEvent(t EventType) *MarketEvent {
	for _, e := range r.events {
		if e.Type == t {
			return e
		}
	}
	return nil
}

// RemoveEvent drops e. It reports whether e was active.
func (r *Region) RemoveEvent(e *MarketEvent) bool {
	for i, active := range r.events {
		if active == e {
			r.events = append(r.events[:i:i], r.events[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateActiveEvents counts every event down one day and removes those that
// ran out, along with bought-out black market lots. The removed events are
// returned in list order.
func (r *Region) UpdateActiveEvents() []*MarketEvent {
	var kept, expired []*MarketEvent
	for _, e := range r.events {
		e.DaysRemaining--
		if e.DaysRemaining <= 0 || (e.Type == EventBlackMarket && e.BlackMarketLot <= 0) {
			expired = append(expired, e)
			continue
		}
		kept = append(kept, e)
	}
	r.events = kept
	return expired
}
