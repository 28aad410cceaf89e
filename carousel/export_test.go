package carousel

// wait blocks until every issued load has delivered or been abandoned.
func (t *Tracker) wait() {
	t.wg.Wait()
}
