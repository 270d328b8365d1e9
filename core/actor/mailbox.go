package actor

// MailboxItem holds one enqueued message plus its links in the mailbox's
// circular doubly-linked list. The sentinel item is its own next and prev
// and is never removed.
type MailboxItem struct {
	Value      any
	next, prev *MailboxItem
}

// Mailbox is a circular doubly-linked list with a head sentinel. The
// mailbox is empty iff sentinel.next == sentinel. All operations below are
// O(1), including Len, except FindFirst, which scans linearly.
type Mailbox struct {
	sentinel *MailboxItem
	count    int
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	s := &MailboxItem{}
	s.next = s
	s.prev = s
	return &Mailbox{sentinel: s}
}

// Empty reports whether the mailbox holds no items.
func (m *Mailbox) Empty() bool {
	return m.sentinel.next == m.sentinel
}

// Len reports the number of items currently in the mailbox.
func (m *Mailbox) Len() int {
	return m.count
}

// InsertAfter links item immediately after existing.
func (m *Mailbox) InsertAfter(existing, item *MailboxItem) {
	item.prev = existing
	item.next = existing.next
	existing.next.prev = item
	existing.next = item
	m.count++
}

// InsertBefore links item immediately before existing.
func (m *Mailbox) InsertBefore(existing, item *MailboxItem) {
	m.InsertAfter(existing.prev, item)
}

// Append links item at the tail of the mailbox (immediately before the
// sentinel).
func (m *Mailbox) Append(item *MailboxItem) {
	m.InsertBefore(m.sentinel, item)
}

// Prepend links item at the head of the mailbox (immediately after the
// sentinel).
func (m *Mailbox) Prepend(item *MailboxItem) {
	m.InsertAfter(m.sentinel, item)
}

// Remove unlinks item from the mailbox. item must not be the sentinel.
func (m *Mailbox) Remove(item *MailboxItem) {
	item.prev.next = item.next
	item.next.prev = item.prev
	item.next = nil
	item.prev = nil
	m.count--
}

// FindFirst scans from sentinel.next, stopping at the sentinel, and
// returns the first item whose value matches predicate, or nil.
func (m *Mailbox) FindFirst(predicate func(any) bool) *MailboxItem {
	for item := m.sentinel.next; item != m.sentinel; item = item.next {
		if predicate(item.Value) {
			return item
		}
	}
	return nil
}

// PrependAllInOrder links a contiguous run of new items at the head of the
// mailbox, in the given slice order. It is the O(1)-per-item equivalent of
// the intrusive prepend-staging merge described in the design: each value
// is linked immediately after the previous one (a moving cursor starting
// at the sentinel), so the whole run ends up at the front in arrival
// order rather than reversed.
func (m *Mailbox) PrependAllInOrder(values []any) {
	cursor := m.sentinel
	for _, v := range values {
		item := &MailboxItem{Value: v}
		m.InsertAfter(cursor, item)
		cursor = item
	}
}

// AppendAll links each value at the tail of the mailbox, in order.
func (m *Mailbox) AppendAll(values []any) {
	for _, v := range values {
		m.Append(&MailboxItem{Value: v})
	}
}
