//go:build !amd64

package platform

import "encoding/base64"

var base64Encoder Encoder = base64.StdEncoding
