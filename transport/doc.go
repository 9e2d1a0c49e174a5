// SPDX-License-Identifier: EPL-2.0

// Package transport performs single cancellable HTTP GET requests.
//
// A Request is created with Client.Request, started with Send and may be
// stopped at any time with Abort. Every request that was sent reports
// exactly one outcome through its Handlers: OnLoad with the full response,
// OnError when the exchange failed, or OnAbort when it was aborted.
// Non-2xx statuses are loads, not errors; interpreting them is up to the
// caller.
package transport
