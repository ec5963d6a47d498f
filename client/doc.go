// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the entry point of the library: it wires configuration,
// the signed transport and the provider operations into one [Client].
//
//	c, err := client.NewFromEnv()
//	if err != nil {
//		return err
//	}
//	id, err := c.CreateApplicant(ctx, attrs, "basic-kyc-level")
//	if errors.Is(err, client.ErrConflict) {
//		// the applicant already exists
//	}
package client
