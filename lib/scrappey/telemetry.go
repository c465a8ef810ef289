package scrappey

import (
	"scrappey-go/lib/restyutil"

	"github.com/go-resty/resty/v2"
)

var restyOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput installs a request/response dump sink on every
// client constructed afterwards. Useful when debugging what the vendor
// actually received and returned.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyOutput = out
}

func installInstrumentOutput(client *resty.Client) {
	restyutil.InstrumentClient(client, tracer, restyOutput)
}
