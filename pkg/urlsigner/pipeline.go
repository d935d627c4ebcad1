package urlsigner

import (
	"net/url"
	"slices"
)

// Pipeline chains encryptors in a fixed order.
//
// Encrypt applies them first to last. Decrypt undoes them last to first and
// passes each step the URL produced by the previous one, so a pipeline of
// [Expiration, HMAC] checks the signature (which covers the timestamp)
// before it checks the timestamp.
type Pipeline struct {
	encryptors []Encryptor
}

// NewPipeline returns a Pipeline over encryptors. Nil entries are skipped.
func NewPipeline(encryptors ...Encryptor) *Pipeline {
	return &Pipeline{
		encryptors: slices.DeleteFunc(slices.Clone(encryptors), func(e Encryptor) bool { return e == nil }),
	}
}

// Len returns the number of encryptors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.encryptors)
}

// Encrypt folds u through every encryptor in order.
func (p *Pipeline) Encrypt(u *url.URL) (*url.URL, error) {
	out := copyURL(u)
	for _, e := range p.encryptors {
		next, err := e.Encrypt(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Decrypt folds u through every encryptor in reverse order.
func (p *Pipeline) Decrypt(u *url.URL) (*url.URL, error) {
	out := copyURL(u)
	for _, e := range slices.Backward(p.encryptors) {
		next, err := e.Decrypt(out)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

func copyURL(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{}
	}
	c := *u
	return &c
}
