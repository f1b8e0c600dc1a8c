//go:build gcloud

package config

import "errors"

// Validate fails when alarm events have nowhere to go on Cloud Run.
func (c *PubSubConfig) Validate() error {
	if c.GCloudProjectID == "" {
		return errors.New("GCLOUD_PROJECT_ID is required for alarm event publishing")
	}

	return nil
}
