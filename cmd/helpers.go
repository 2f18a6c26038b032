package main

import (
	"context"
	"fmt"
	"time"
)

func (app *application) doInBackground(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				app.logger.Error(fmt.Sprintf("panic in background task: %v", r))
			}
		}()
		fn()
	}()
}

// provisionDNS requests a CNAME for the subdomain off the request path.
// Nothing waits for the result; a failure is logged and the record simply
// never appears, which is the documented contract of the provisioning
// call.
func (app *application) provisionDNS(subdomain string) {
	app.doInBackground(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.dns.SetRecord(ctx, "CNAME", subdomain); err != nil {
			app.logger.Error("DNS provisioning failed", "subdomain", subdomain, "error", err.Error())
			return
		}
		app.logger.Info("DNS record requested", "subdomain", subdomain)
	})
}
