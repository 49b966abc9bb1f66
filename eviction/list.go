package eviction

// node is one key inside a keyList.
type node struct {
	key string

	// freq is only used by LFU.
	freq uint64

	// prev points towards the head (newer), next towards the tail (older).
	prev *node
	next *node
}

// keyList is an intrusive doubly-linked list of keys.
// The head is the most recently added key and the tail the oldest.
type keyList struct {
	head *node
	tail *node
	n    int
}

// pushFront adds a node at the head.
func (l *keyList) pushFront(n *node) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n

	// If the list was empty, head and tail are the same
	if l.tail == nil {
		l.tail = n
	}
	l.n++
}

// remove unlinks a node, fixing head and tail if needed.
func (l *keyList) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.n--
}

// moveToFront marks a node as the newest.
func (l *keyList) moveToFront(n *node) {
	if l.head == n {
		return
	}
	l.remove(n)
	l.pushFront(n)
}

func (l *keyList) back() *node { return l.tail }

func (l *keyList) len() int { return l.n }
