// Package revocation provides a file-backed deny-list of revoked token
// ids. Tokens are stateless, so short expiry bounds a leaked token's
// blast radius; the deny-list closes the remaining window by letting an
// operator revoke individual tokens (by jti) before they expire. The
// access guard consults it after signature and expiry checks.
package revocation

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Denylist holds the set of revoked token ids, reloaded from its backing
// file whenever the file changes.
type Denylist struct {
	path    string
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewDenylist loads the deny-list from path and starts watching the
// file's directory for changes. A missing file means nothing is revoked;
// the watcher picks the file up if it appears later.
func NewDenylist(path string) (*Denylist, error) {
	d := &Denylist{
		path:    path,
		revoked: make(map[string]struct{}),
	}
	d.Load()

	if err := watchDir(filepath.Dir(path), func() { d.Load() }); err != nil {
		return nil, err
	}
	return d, nil
}

// Load replaces the revoked set with the file's current contents. The
// file is a JSON array of token id strings.
func (d *Denylist) Load() {
	file, err := os.ReadFile(d.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("revocation: failed to read deny-list '%s': %v\n", d.path, err)
		}
		d.replace(nil)
		return
	}

	var ids []string
	if err := json.Unmarshal(file, &ids); err != nil {
		// keep the previous set; a half-written file must not
		// un-revoke anything
		log.Printf("revocation: failed to parse deny-list '%s': %v\n", d.path, err)
		return
	}

	d.replace(ids)
	log.Printf("revocation: loaded %d revoked token ids from %s\n", len(ids), d.path)
}

// Revoked reports whether the token id has been revoked.
func (d *Denylist) Revoked(tokenID string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.revoked[tokenID]
	return ok
}

func (d *Denylist) replace(ids []string) {
	revoked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		revoked[id] = struct{}{}
	}

	d.mu.Lock()
	d.revoked = revoked
	d.mu.Unlock()
}
