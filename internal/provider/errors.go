package provider

import "github.com/rotisserie/eris"

// ErrNoCredentials indicates a missing provider API key. Fatal: nothing can
// be fetched without credentials.
var ErrNoCredentials = eris.New("provider: missing api key")

// ErrFilterRejected indicates the provider declined the request shape
// (unsupported filter combination). Recoverable: the fetcher advances to its
// next fallback tier. Any other provider failure is a transport error and
// propagates unchanged.
var ErrFilterRejected = eris.New("provider: filter rejected")
