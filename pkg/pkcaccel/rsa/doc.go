// Package rsa runs raw RSA on a pkcaccel Device.
//
// Public computes input^e mod n and Private computes the CRT private-key
// permutation. Both operate on exactly key.Len bytes and apply no padding;
// PKCS #1 encodings belong to the caller.
//
//	key, err := rsa.PrivateKeyFrom(stdKey)
//	if err != nil {
//	    return err
//	}
//	sig, err := rsa.Private(ctx, dev, key, nil, encoded)
//	...
//	back, err := rsa.Public(ctx, dev, &key.PublicKey, sig)
//
// Operands are laid out in the device scratch RAM for the duration of one
// call and wiped when the call returns.
package rsa
