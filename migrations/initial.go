package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		if err := createGuestsCollection(app); err != nil {
			return err
		}
		return createSettingsCollection(app)
	}, nil)
}

func createGuestsCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("guests")
	if existing != nil {
		return nil // Already exists
	}

	collection := core.NewBaseCollection("guests")

	collection.Fields.Add(&core.TextField{
		Id:       "guest_name",
		Name:     "name",
		Required: true,
		Max:      200,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "guest_institution",
		Name:     "institution",
		Required: true,
		Max:      300,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "guest_position",
		Name:     "position",
		Required: false,
		Max:      200,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "guest_phone",
		Name:     "phone",
		Required: true,
		Max:      50,
	})

	collection.Fields.Add(&core.SelectField{
		Id:        "guest_purpose",
		Name:      "purpose",
		Required:  true,
		MaxSelect: 1,
		Values: []string{
			"Koordinasi Program",
			"Pemeriksaan Kesehatan",
			"Konsultasi Pembina",
			"Studi Banding",
			"Lainnya",
		},
	})

	collection.Fields.Add(&core.TextField{
		Id:       "guest_notes",
		Name:     "notes",
		Required: false,
		Max:      2000,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "guest_remarks",
		Name:     "remarks",
		Required: false,
		Max:      2000,
	})

	// Indexes
	collection.Indexes = []string{
		"CREATE INDEX idx_guests_created ON guests (created)",
		"CREATE INDEX idx_guests_purpose ON guests (purpose)",
	}

	// Entries are append-only. Reads are public so the dashboard's realtime
	// subscription works without PocketBase auth (the admin gate lives in
	// the custom routes); writes and deletes go through custom routes only.
	collection.ListRule = types.Pointer("")
	collection.ViewRule = types.Pointer("")
	collection.CreateRule = nil
	collection.UpdateRule = nil // never updated in place
	collection.DeleteRule = nil

	return app.Save(collection)
}

func createSettingsCollection(app core.App) error {
	existing, _ := app.FindCollectionByNameOrId("settings")
	if existing != nil {
		return nil // Already exists
	}

	collection := core.NewBaseCollection("settings")

	collection.Fields.Add(&core.TextField{
		Id:       "set_school_name",
		Name:     "schoolName",
		Required: false,
		Max:      300,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "set_unit_name",
		Name:     "unitName",
		Required: false,
		Max:      300,
	})

	// Stored and compared in plain text. Known, accepted limitation of the
	// original design; do not replace with a hash without migrating the
	// login and password-change flows together.
	collection.Fields.Add(&core.TextField{
		Id:       "set_admin_password",
		Name:     "adminPassword",
		Required: false,
		Max:      200,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "set_visi",
		Name:     "visi",
		Required: false,
		Max:      10000,
	})

	collection.Fields.Add(&core.TextField{
		Id:       "set_misi",
		Name:     "misi",
		Required: false,
		Max:      10000,
	})

	// Data-URL image payload, as the original stores it
	collection.Fields.Add(&core.TextField{
		Id:       "set_logo",
		Name:     "logo",
		Required: false,
		Max:      4000000,
	})

	// Ordered array of 5 data-URL strings; empty slots permitted
	collection.Fields.Add(&core.JSONField{
		Id:      "set_slides",
		Name:    "slides",
		MaxSize: 25000000,
	})

	// The singleton is read and written exclusively through custom routes,
	// which seed defaults on first read and strip the password from public
	// responses.
	collection.ListRule = nil
	collection.ViewRule = nil
	collection.CreateRule = nil
	collection.UpdateRule = nil
	collection.DeleteRule = nil

	return app.Save(collection)
}
