// Package mongo connects to MongoDB with retries.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Healthcheck returns a ping probe for the readiness endpoint. Connection
// failures are reported as ErrFailedToConnectToMongo joined with the driver
// error, so errors.Is works on both.
package mongo
