//go:build amd64

package platform

import "github.com/cloudwego/base64x"

// base64x ships SIMD encoders for amd64.
var base64Encoder Encoder = base64x.StdEncoding
