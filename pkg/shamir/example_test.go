package shamir_test

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/Beastly713/sss256/pkg/shamir"
)

func ExampleSplit() {
	secret := []byte("Too many secrets, Marty!")

	// any 3 of the 5 shares recover the secret
	shares, err := shamir.Split(secret, 5, 3)
	if err != nil {
		log.Fatal(err)
	}

	recovered, err := shamir.Combine([][]byte{shares[4], shares[0], shares[2]})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(len(shares[0]), string(recovered))
	// Output: 48 Too many secrets, Marty!
}

func ExampleCombineStream() {
	var a, b bytes.Buffer
	err := shamir.SplitStream(bytes.NewReader([]byte("streamed")), []io.Writer{&a, &b}, 2)
	if err != nil {
		log.Fatal(err)
	}

	var out bytes.Buffer
	if err := shamir.CombineStream([]io.Reader{&b, &a}, &out, shamir.WithThreshold(2)); err != nil {
		log.Fatal(err)
	}

	fmt.Println(out.String())
	// Output: streamed
}
