package store

const createProfileCacheTable = `
CREATE TABLE IF NOT EXISTS profile_cache (
    email          TEXT PRIMARY KEY,
    user_id        INTEGER   NOT NULL,
    name           TEXT      NOT NULL DEFAULT '',
    crypto_profile TEXT      NOT NULL,
    cached_at      TIMESTAMP NOT NULL
);`

const upsertProfile = `
INSERT INTO profile_cache (email, user_id, name, crypto_profile, cached_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(email) DO UPDATE SET
    user_id        = excluded.user_id,
    name           = excluded.name,
    crypto_profile = excluded.crypto_profile,
    cached_at      = excluded.cached_at;`

const selectProfileByEmail = `
SELECT user_id, name, crypto_profile, cached_at
FROM profile_cache
WHERE email = ?;`

const deleteProfileByEmail = `
DELETE FROM profile_cache
WHERE email = ?;`
