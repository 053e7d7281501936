//go:build unit
// +build unit

package cryptography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rsa_key_service/internal/domain/keys"
)

// The expected documents for the 1024-bit test vector, produced
// independently of this implementation. Element order and conditional
// presence are contract points, so these compare exactly.
const (
	testPublicXML = "<RSAKeyValue><Modulus>iMLCUB/Hpt1zVoGjhEdweOq0NU0iXqWEOI6FWe5r+4JolS/+bOFE4z+EI/BRIbierxAlhtNPwx0XcA0YLNZ8nd/aYYbBlXLEiwnyYsJiQBOSU80//jtkM3jqPEJRbq0cKS2xhnHJ3Errluj53T/hBqzapFIMZB2knQpEc9Xowgk=</Modulus><Exponent>EQ==</Exponent></RSAKeyValue>"

	testPrivateXML = "<RSAKeyValue><Modulus>iMLCUB/Hpt1zVoGjhEdweOq0NU0iXqWEOI6FWe5r+4JolS/+bOFE4z+EI/BRIbierxAlhtNPwx0XcA0YLNZ8nd/aYYbBlXLEiwnyYsJiQBOSU80//jtkM3jqPEJRbq0cKS2xhnHJ3Errluj53T/hBqzapFIMZB2knQpEc9Xowgk=</Modulus><Exponent>EQ==</Exponent><P>AZlVgYaFGxd/QYl02z0Mylc76MXUfM+XQM/Xz7bFfztGXN3wzRyPZDLHnK7VPDJzHXKXkjdjeEaxjN0ljM4eW2M=</P><Q>VYfxiqB9btqSmKEz5B1gasRumYLCihW4w0kfFRroBPhcnG1LYlJNFXBjmfJm3K27GXedJhr47pK66ISb9mLGow==</Q><DP>kHiIEVwnrfCtuAsgM6opS/cG3Gkc/fkl7wDf5ieWUSfkipE5VV/JAt0KH5aNt3PsRo/ZQLmx+tVAxoW5ObBcfQ==</DP><DQ>PF/1y0QcTj/vAlOsKI01ABIv8+PUnbT65DOdeE86Xdx9m5hxcpRypbi+xwV1yPMaqJCrKfTr87LeSccEretfCQ==</DQ><InverseQ>KhxBj+AUouk/YVsNbwG4UJKha9sb7XCqSrgUAcJrnm8AMtbGBo8+q/v+jUENn2iPJHUsfupwGgFFblkyFHp/cg==</InverseQ><D>aJTu8fovQ14M58yMGdxG8w3VGbN0orrOhZopvT3aGq8ErlHgrZ00rcco0DA+CrpbOpPgdike4H+ogtzWQGfIs3wMtlnvwWl+yBq3iz8MxQIkV59XoQb1hqCo/wA4UPjlkac/zIyTbC8+CcXMDmGD5woE/xVdfYSF5tobotETAeU=</D></RSAKeyValue>"
)

func TestToXMLString_KnownVector(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()
	require.NoError(t, engine.ImportParameters(testVectorParameters(t)))

	t.Run("Public", func(t *testing.T) {
		doc, err := engine.ToXMLString(false)
		require.NoError(t, err)
		assert.Equal(t, testPublicXML, doc)
	})

	t.Run("Private", func(t *testing.T) {
		doc, err := engine.ToXMLString(true)
		require.NoError(t, err)
		assert.Equal(t, testPrivateXML, doc)
	})
}

func TestToXMLString_PartialCRTOmitsGroup(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()

	params := testVectorParameters(t)
	params.InverseQ = nil
	require.NoError(t, engine.ImportParameters(params))

	doc, err := engine.ToXMLString(true)
	require.NoError(t, err)
	assert.NotContains(t, doc, "<P>")
	assert.NotContains(t, doc, "<Q>")
	assert.Contains(t, doc, "<D>")
}

func TestToXMLString_PrivateWithoutPrivateKey(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()
	require.NoError(t, engine.ImportParameters(&keys.RSAParameters{
		Modulus:  mustHex(t, testModulusHex),
		Exponent: []byte{17},
	}))

	doc, err := engine.ToXMLString(true)
	assert.Empty(t, doc)
	assert.True(t, keys.IsMissingParameter(err))
}

func TestFromXMLString_KnownVector(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()

	require.NoError(t, engine.FromXMLString(testPrivateXML))
	assert.True(t, engine.CRTAvailable())
	assert.False(t, engine.PublicOnly())

	plain, err := engine.Decrypt(mustHex(t, testCipherHex))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, testPlainHex), plain)
}

func TestFromXMLString_RoundTrip(t *testing.T) {
	original := setupEngine(t, 512, true, nil)
	defer func() { require.NoError(t, original.Close()) }()
	require.NoError(t, original.GenerateKeyPair())

	doc, err := original.ToXMLString(true)
	require.NoError(t, err)

	restored := setupEngine(t, 512, true, nil)
	defer func() { require.NoError(t, restored.Close()) }()
	require.NoError(t, restored.FromXMLString(doc))

	message := []byte("xml round trip")
	cipher, err := original.Encrypt(message)
	require.NoError(t, err)
	plain, err := restored.Decrypt(cipher)
	require.NoError(t, err)
	assert.Equal(t, message, plain)
}

func TestFromXMLString_Malformed(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()
	require.NoError(t, engine.ImportParameters(testVectorParameters(t)))

	err := engine.FromXMLString("not an xml document")
	assert.True(t, keys.IsMalformedKeyXML(err))

	err = engine.FromXMLString("<RSAKeyValue><Modulus>!!!</Modulus><Exponent>EQ==</Exponent></RSAKeyValue>")
	assert.True(t, keys.IsMalformedKeyXML(err))

	// The failed imports left the engine untouched.
	plain, err := engine.Decrypt(mustHex(t, testCipherHex))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, testPlainHex), plain)
}

func TestFromXMLString_MissingMandatoryElements(t *testing.T) {
	engine := setupEngine(t, 1024, true, nil)
	defer func() { require.NoError(t, engine.Close()) }()

	err := engine.FromXMLString("<RSAKeyValue><Exponent>EQ==</Exponent></RSAKeyValue>")
	assert.True(t, keys.IsMissingParameter(err))

	err = engine.FromXMLString("<RSAKeyValue><Modulus>EQ==</Modulus></RSAKeyValue>")
	assert.True(t, keys.IsMissingParameter(err))
}
