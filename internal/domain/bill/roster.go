package bill

// Roster mutations. These operate on the bill in place; callers working from
// a stored snapshot should mutate a copy and persist the result.

// FindPerson returns the person with the given ID, or false if absent.
func (b *Bill) FindPerson(personID string) (Person, bool) {
	for _, p := range b.People {
		if p.ID == personID {
			return p, true
		}
	}
	return Person{}, false
}

// FindItem returns the item with the given ID, or false if absent.
func (b *Bill) FindItem(itemID string) (Item, bool) {
	for _, it := range b.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// AddPerson appends a person to the roster. Roster order is append order and
// is significant: the last selected person on an item absorbs rounding
// remainders.
func (b *Bill) AddPerson(p Person) {
	b.People = append(b.People, p)
}

// RemovePerson deletes a person and cascades the removal into every item:
// the ID is dropped from SplitWith and CustomSplits so no item is left with
// an orphaned reference. Returns false if the person was not on the bill.
func (b *Bill) RemovePerson(personID string) bool {
	idx := -1
	for i, p := range b.People {
		if p.ID == personID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	b.People = append(b.People[:idx], b.People[idx+1:]...)

	for i := range b.Items {
		item := &b.Items[i]
		kept := item.SplitWith[:0]
		for _, id := range item.SplitWith {
			if id != personID {
				kept = append(kept, id)
			}
		}
		item.SplitWith = kept
		delete(item.CustomSplits, personID)
	}
	return true
}

// AddItem appends an item, keeping item order stable for breakdowns.
func (b *Bill) AddItem(it Item) {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	b.Items = append(b.Items, it)
}

// UpdateItem replaces the item with the same ID. Returns false if no item
// matches.
func (b *Bill) UpdateItem(it Item) bool {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	for i := range b.Items {
		if b.Items[i].ID == it.ID {
			b.Items[i] = it
			return true
		}
	}
	return false
}

// RemoveItem deletes the item with the given ID. Returns false if absent.
func (b *Bill) RemoveItem(itemID string) bool {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			return true
		}
	}
	return false
}
